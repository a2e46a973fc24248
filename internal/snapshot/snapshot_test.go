package snapshot

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func testFrame() Frame {
	blue := color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	red := color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	return Frame{
		Title:    "Information that monster(s) remembers or forgets",
		Subtitle: "Sourced from the OCG.",
		Category: "Test",
		Headers:  [4]string{"Information on the card", "Temporary Banished", "Flipped Face-down", "FAQ"},
		Rows: []Row{
			{Info: "Card X", TemporaryBanished: Label{"Remembered", blue}, FlipFaceDown: Label{"Forgotten", red}, HasFAQ: true},
			{Info: "A much longer piece of card information that has to wrap over several lines of the info column", TemporaryBanished: Label{"Forgotten", red}, FlipFaceDown: Label{"Forgotten", red}},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRasterizeScale(t *testing.T) {
	one, err := Rasterize(testFrame(), 1)
	require.NoError(t, err)
	two, err := Rasterize(testFrame(), DefaultScale)
	require.NoError(t, err)

	assert.Equal(t, frameWidth, one.Bounds().Dx())
	assert.Equal(t, 2*frameWidth, two.Bounds().Dx())
	assert.Greater(t, two.Bounds().Dy(), one.Bounds().Dy())
}

func TestRasterizeDrawsStatusColours(t *testing.T) {
	img, err := Rasterize(testFrame(), 1)
	require.NoError(t, err)

	want := color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "no pixel in the Remembered colour")
}

func TestRasterizeGrowsWithRows(t *testing.T) {
	f := testFrame()
	short := f
	short.Rows = f.Rows[:1]

	a, err := Rasterize(short, 1)
	require.NoError(t, err)
	b, err := Rasterize(f, 1)
	require.NoError(t, err)
	assert.Greater(t, b.Bounds().Dy(), a.Bounds().Dy())

	empty := f
	empty.Rows = nil
	_, err = Rasterize(empty, 1)
	assert.NoError(t, err)
}

func TestLayoutKeepsTextInsideColumns(t *testing.T) {
	orange := color.RGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}
	f := testFrame()
	f.Rows = append(f.Rows, Row{Info: "Card Y", TemporaryBanished: Label{"Refer to ruling", orange}, FlipFaceDown: Label{"Refer to ruling", orange}})

	for _, scale := range []int{1, DefaultScale} {
		c, err := newCanvas(f, scale)
		require.NoError(t, err)

		bold := lineHeight(c.faces.bold)
		tallest := 0
		for i, lines := range c.headers {
			tallest = max(tallest, len(lines))
			for _, line := range lines {
				w := font.MeasureString(c.faces.bold, line).Ceil()
				assert.LessOrEqual(t, w, c.textWidth(i), "scale %d: header line %q", scale, line)
			}
		}
		assert.GreaterOrEqual(t, c.headerHeight, tallest*bold)

		for _, tr := range c.rows {
			for k, lines := range tr.status {
				for _, line := range lines {
					w := font.MeasureString(c.faces.bold, line).Ceil()
					assert.LessOrEqual(t, w, c.textWidth(k+1), "scale %d: status line %q", scale, line)
				}
				assert.GreaterOrEqual(t, tr.height, len(lines)*bold)
			}
		}
		c.faces.Close()
	}
}

func TestRasterizeInvalidScale(t *testing.T) {
	_, err := Rasterize(testFrame(), 0)
	assert.ErrorIs(t, err, ErrInvalidScale)
	_, err = Rasterize(testFrame(), 5)
	assert.ErrorIs(t, err, ErrInvalidScale)
}

func TestExporterProducesPNG(t *testing.T) {
	e := NewExporter(DefaultScale, discardLogger())
	f := testFrame()

	ch, err := e.Start(&f)
	require.NoError(t, err)
	res := <-ch
	require.NoError(t, res.Err)

	img, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err)
	assert.Equal(t, 2*frameWidth, img.Bounds().Dx())
	assert.Equal(t, Idle, e.State())
}

func TestExporterNoTarget(t *testing.T) {
	e := NewExporter(DefaultScale, discardLogger())

	var data []byte
	var err error
	assert.NotPanics(t, func() {
		data, err = e.Export(context.Background(), nil)
	})
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.Nil(t, data)
	assert.Equal(t, Idle, e.State())
}

func TestExporterRejectsConcurrentTrigger(t *testing.T) {
	e := NewExporter(DefaultScale, discardLogger())
	release := make(chan struct{})
	started := make(chan struct{})
	e.rasterize = func(f Frame, scale int) (*image.RGBA, error) {
		close(started)
		<-release
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	}

	f := testFrame()
	ch, err := e.Start(&f)
	require.NoError(t, err)
	<-started
	assert.Equal(t, Exporting, e.State())

	_, err = e.Start(&f)
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(release)
	res := <-ch
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.PNG)
	assert.Equal(t, Idle, e.State())

	// Usable again once idle
	e.rasterize = Rasterize
	_, err = e.Export(context.Background(), &f)
	assert.NoError(t, err)
}

func TestExporterFailureIsReturned(t *testing.T) {
	e := NewExporter(DefaultScale, discardLogger())
	e.rasterize = func(Frame, int) (*image.RGBA, error) {
		return nil, errors.New("out of paint")
	}

	f := testFrame()
	_, err := e.Export(context.Background(), &f)
	assert.ErrorContains(t, err, "out of paint")
	assert.Equal(t, Idle, e.State())
}

func TestExporterRecoversPanic(t *testing.T) {
	e := NewExporter(DefaultScale, discardLogger())
	e.rasterize = func(Frame, int) (*image.RGBA, error) {
		panic("bad frame")
	}

	f := testFrame()
	_, err := e.Export(context.Background(), &f)
	assert.ErrorContains(t, err, "bad frame")
	assert.Equal(t, Idle, e.State())
}

func TestExportReturnsWhenContextEnds(t *testing.T) {
	e := NewExporter(DefaultScale, discardLogger())
	release := make(chan struct{})
	e.rasterize = func(Frame, int) (*image.RGBA, error) {
		<-release
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	f := testFrame()
	_, err := e.Export(ctx, &f)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The capture is not cancelled; it finishes once unblocked
	close(release)
	assert.Eventually(t, func() bool { return e.State() == Idle }, time.Second, 5*time.Millisecond)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "exporting", Exporting.String())
}
