package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var ErrInvalidScale = errors.New("scale must be between 1 and 4")

// Layout constants in CSS pixels; multiplied by the scale when drawing.
const (
	frameWidth    = 896
	framePadding  = 24
	cellPadding   = 16
	titleSize     = 18
	bodySize      = 14
	smallSize     = 12
	selectWidth   = 180
	selectHeight  = 36
	sectionGap    = 16
	infoColumnPct = 46
)

var (
	colorBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorText       = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	colorMuted      = color.RGBA{R: 0x73, G: 0x73, B: 0x73, A: 0xff}
	colorBorder     = color.RGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff}
	colorFAQ        = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
)

var parsedFonts = sync.OnceValues(func() ([2]*opentype.Font, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return [2]*opentype.Font{}, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return [2]*opentype.Font{}, fmt.Errorf("parse bold font: %w", err)
	}
	return [2]*opentype.Font{regular, bold}, nil
})

type faces struct {
	title font.Face
	body  font.Face
	bold  font.Face
	small font.Face
}

func newFaces(scale int) (*faces, error) {
	fonts, err := parsedFonts()
	if err != nil {
		return nil, err
	}
	regular, bold := fonts[0], fonts[1]

	opts := func(size float64) *opentype.FaceOptions {
		return &opentype.FaceOptions{Size: size, DPI: 72 * float64(scale), Hinting: font.HintingFull}
	}

	f := &faces{}
	if f.title, err = opentype.NewFace(bold, opts(titleSize)); err != nil {
		return nil, fmt.Errorf("title face: %w", err)
	}
	if f.body, err = opentype.NewFace(regular, opts(bodySize)); err != nil {
		return nil, fmt.Errorf("body face: %w", err)
	}
	if f.bold, err = opentype.NewFace(bold, opts(bodySize)); err != nil {
		return nil, fmt.Errorf("bold face: %w", err)
	}
	if f.small, err = opentype.NewFace(regular, opts(smallSize)); err != nil {
		return nil, fmt.Errorf("small face: %w", err)
	}
	return f, nil
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.body, f.bold, f.small} {
		if face != nil {
			face.Close()
		}
	}
}

// Rasterize draws the frame into a new image. scale is the device pixel
// ratio: scale 2 yields an image twice as wide and tall as the CSS layout.
func Rasterize(f Frame, scale int) (*image.RGBA, error) {
	c, err := newCanvas(f, scale)
	if err != nil {
		return nil, err
	}
	defer c.faces.Close()

	c.img = image.NewRGBA(image.Rect(0, 0, c.px(frameWidth), c.height))
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	c.paint(f)
	return c.img, nil
}

// newCanvas loads the faces for scale and lays f out. The caller closes
// c.faces.
func newCanvas(f Frame, scale int) (*canvas, error) {
	if scale < 1 || scale > 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidScale, scale)
	}

	fc, err := newFaces(scale)
	if err != nil {
		return nil, err
	}

	c := &canvas{scale: scale, faces: fc}
	c.layout(f)
	return c, nil
}

type tableRow struct {
	top, height int
	info        []string
	// status lines for the two mechanic columns
	status [2][]string
}

// canvas holds the computed layout in device pixels.
type canvas struct {
	scale int
	faces *faces
	img   *image.RGBA

	titleLines    []string
	subtitleLines []string
	titleTop      int
	subtitleTop   int
	selectTop     int
	tableTop      int
	headerHeight  int
	headers       [4][]string
	rows          []tableRow
	height        int
	cols          [5]int
}

func (c *canvas) px(v int) int { return v * c.scale }

// textWidth is the room for text inside column i.
func (c *canvas) textWidth(i int) int {
	return c.cols[i+1] - c.cols[i] - 2*c.px(cellPadding)
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

func (c *canvas) layout(f Frame) {
	inner := c.px(frameWidth - 2*framePadding)
	left := c.px(framePadding)
	tableWidth := inner
	infoWidth := tableWidth * infoColumnPct / 100
	rest := (tableWidth - infoWidth) / 3
	c.cols = [5]int{left, left + infoWidth, left + infoWidth + rest, left + infoWidth + 2*rest, left + tableWidth}

	y := c.px(framePadding)
	c.titleTop = y
	c.titleLines = wrap(c.faces.title, strings.ToUpper(f.Title), inner)
	y += len(c.titleLines) * lineHeight(c.faces.title)

	y += c.px(8)
	c.subtitleTop = y
	c.subtitleLines = wrap(c.faces.small, f.Subtitle, inner)
	y += len(c.subtitleLines) * lineHeight(c.faces.small)

	y += c.px(sectionGap)
	c.selectTop = y
	y += c.px(selectHeight)

	y += c.px(sectionGap)
	c.tableTop = y
	boldLH := lineHeight(c.faces.bold)
	tallest := 1
	for i, h := range f.Headers {
		c.headers[i] = wrap(c.faces.bold, h, c.textWidth(i))
		tallest = max(tallest, len(c.headers[i]))
	}
	c.headerHeight = tallest*boldLH + 2*c.px(cellPadding)
	y += c.headerHeight

	bodyLH := lineHeight(c.faces.body)
	c.rows = make([]tableRow, len(f.Rows))
	for i, r := range f.Rows {
		tr := tableRow{top: y, info: wrap(c.faces.body, r.Info, c.textWidth(0))}
		tr.status[0] = wrap(c.faces.bold, r.TemporaryBanished.Text, c.textWidth(1))
		tr.status[1] = wrap(c.faces.bold, r.FlipFaceDown.Text, c.textWidth(2))

		content := max(len(tr.info)*bodyLH, len(tr.status[0])*boldLH, len(tr.status[1])*boldLH, boldLH)
		tr.height = content + 2*c.px(cellPadding)
		c.rows[i] = tr
		y += tr.height
	}

	c.height = y + c.px(framePadding)
}

func (c *canvas) paint(f Frame) {
	lh := lineHeight(c.faces.title)
	for i, line := range c.titleLines {
		w := font.MeasureString(c.faces.title, line).Ceil()
		x := (c.img.Bounds().Dx() - w) / 2
		c.text(c.faces.title, colorText, x, c.titleTop+i*lh, line)
	}
	lh = lineHeight(c.faces.small)
	for i, line := range c.subtitleLines {
		w := font.MeasureString(c.faces.small, line).Ceil()
		x := (c.img.Bounds().Dx() - w) / 2
		c.text(c.faces.small, colorMuted, x, c.subtitleTop+i*lh, line)
	}

	// category selector
	sel := image.Rect(c.cols[0], c.selectTop, c.cols[0]+c.px(selectWidth), c.selectTop+c.px(selectHeight))
	c.box(sel)
	textTop := sel.Min.Y + (sel.Dy()-lineHeight(c.faces.body))/2
	c.text(c.faces.body, colorText, sel.Min.X+c.px(12), textTop, f.Category)
	c.text(c.faces.body, colorMuted, sel.Max.X-c.px(22), textTop, "v")

	// table
	bottom := c.tableTop + c.headerHeight
	if n := len(c.rows); n > 0 {
		bottom = c.rows[n-1].top + c.rows[n-1].height
	}
	c.box(image.Rect(c.cols[0], c.tableTop, c.cols[4], bottom))
	for _, x := range c.cols[1:4] {
		c.fill(image.Rect(x, c.tableTop, x+c.scale, bottom), colorBorder)
	}

	pad := c.px(cellPadding)
	boldLH := lineHeight(c.faces.bold)
	for i, lines := range c.headers {
		for j, line := range lines {
			c.text(c.faces.bold, colorText, c.cols[i]+pad, c.tableTop+pad+j*boldLH, line)
		}
	}

	y := c.tableTop + c.headerHeight
	c.fill(image.Rect(c.cols[0], y, c.cols[4], y+c.scale), colorBorder)

	lh = lineHeight(c.faces.body)
	for i, r := range f.Rows {
		tr := c.rows[i]
		for j, line := range tr.info {
			c.text(c.faces.body, colorText, c.cols[0]+pad, tr.top+pad+j*lh, line)
		}
		colors := [2]color.RGBA{r.TemporaryBanished.Color, r.FlipFaceDown.Color}
		for k, lines := range tr.status {
			for j, line := range lines {
				c.text(c.faces.bold, colors[k], c.cols[k+1]+pad, tr.top+pad+j*boldLH, line)
			}
		}

		marker := colorText
		if r.HasFAQ {
			marker = colorFAQ
		}
		c.text(c.faces.bold, marker, c.cols[3]+pad, tr.top+pad, "(?)")

		if i < len(f.Rows)-1 {
			rb := tr.top + tr.height
			c.fill(image.Rect(c.cols[0], rb, c.cols[4], rb+c.scale), colorBorder)
		}
	}
}

// text draws s with its top-left corner at (x, top).
func (c *canvas) text(face font.Face, col color.RGBA, x, top int, s string) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func (c *canvas) fill(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// box draws a one CSS pixel border around r.
func (c *canvas) box(r image.Rectangle) {
	t := c.scale
	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), colorBorder)
	c.fill(image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), colorBorder)
	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), colorBorder)
	c.fill(image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), colorBorder)
}

// wrap breaks text into lines no wider than width. A single word wider
// than width gets a line of its own.
func wrap(face font.Face, text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if font.MeasureString(face, candidate).Ceil() <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
