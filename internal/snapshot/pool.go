package snapshot

import (
	"context"
	"image"
	"log/slog"

	"golang.org/x/sync/semaphore"
)

// Pool hands every export its own Exporter and bounds how many captures
// rasterize at once. Requests over the limit wait for a slot instead of
// being turned away.
type Pool struct {
	sem       *semaphore.Weighted
	scale     int
	log       *slog.Logger
	rasterize func(Frame, int) (*image.RGBA, error)
}

func NewPool(scale, limit int, log *slog.Logger) *Pool {
	return &Pool{
		sem:       semaphore.NewWeighted(int64(limit)),
		scale:     scale,
		log:       log,
		rasterize: Rasterize,
	}
}

// Export waits for a free slot and captures frame. If ctx ends first Export
// returns ctx.Err(); a capture that already started keeps its slot until it
// finishes.
func (p *Pool) Export(ctx context.Context, frame *Frame) ([]byte, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	e := &Exporter{scale: p.scale, log: p.log, rasterize: p.rasterize}
	ch, err := e.Start(frame)
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}

	done := make(chan Result, 1)
	go func() {
		res := <-ch
		p.sem.Release(1)
		done <- res
	}()

	select {
	case res := <-done:
		return res.PNG, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
