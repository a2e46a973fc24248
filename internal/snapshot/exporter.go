package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sync/atomic"
	"time"
)

var (
	ErrExportInProgress = errors.New("export already in progress")
	ErrNoTarget         = errors.New("no view mounted to capture")
)

// State of an Exporter.
type State int32

const (
	Idle State = iota
	Exporting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Exporting:
		return "exporting"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Result is the outcome of one export.
type Result struct {
	PNG []byte
	Err error
}

// Exporter is the export state of one view: it runs at most one capture at
// a time. Failures are logged and returned in the Result; they never panic
// the caller.
type Exporter struct {
	state     atomic.Int32
	scale     int
	log       *slog.Logger
	rasterize func(Frame, int) (*image.RGBA, error)
}

func NewExporter(scale int, log *slog.Logger) *Exporter {
	return &Exporter{scale: scale, log: log, rasterize: Rasterize}
}

// State reports whether a capture is running.
func (e *Exporter) State() State {
	return State(e.state.Load())
}

// Start begins capturing frame in the background and returns a channel that
// receives exactly one Result. While a capture is running Start returns
// ErrExportInProgress and leaves the running capture alone. There is no
// cancellation: a started capture always runs to completion or failure.
func (e *Exporter) Start(frame *Frame) (<-chan Result, error) {
	if !e.state.CompareAndSwap(int32(Idle), int32(Exporting)) {
		return nil, ErrExportInProgress
	}

	ch := make(chan Result, 1)
	go func() {
		start := time.Now()
		data, err := e.capture(frame)
		if err != nil {
			e.log.Error("snapshot export failed", "error", err)
		} else {
			e.log.Info("snapshot exported", "bytes", len(data), "duration", time.Since(start))
		}
		e.state.Store(int32(Idle))
		ch <- Result{PNG: data, Err: err}
		close(ch)
	}()
	return ch, nil
}

// Export starts a capture and waits for it. If ctx ends first Export
// returns ctx.Err() while the capture finishes in the background.
func (e *Exporter) Export(ctx context.Context, frame *Frame) ([]byte, error) {
	ch, err := e.Start(frame)
	if err != nil {
		return nil, err
	}
	select {
	case res := <-ch:
		return res.PNG, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Exporter) capture(frame *Frame) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snapshot panicked: %v", r)
		}
	}()

	if frame == nil {
		return nil, ErrNoTarget
	}

	img, err := e.rasterize(*frame, e.scale)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
