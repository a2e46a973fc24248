package cases

import (
	"errors"
	"fmt"
	"image/color"
)

var ErrUnmappedStatus = errors.New("no style for memory status")

// Style is the visual treatment of a status label, used both by the HTML
// view (Class) and by the snapshot rasterizer (Color).
type Style struct {
	Class string
	Color color.RGBA
}

var statusStyles = map[MemoryStatus]Style{
	Remembered:    {Class: "status status--remembered", Color: color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}},
	Forgotten:     {Class: "status status--forgotten", Color: color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}},
	ReferToRuling: {Class: "status status--ruling", Color: color.RGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}},
}

// StatusStyle returns the fixed style of a status.
func StatusStyle(s MemoryStatus) (Style, error) {
	style, ok := statusStyles[s]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnmappedStatus, string(s))
	}
	return style, nil
}

// FAQ trigger classes. A row without FAQs keeps a clickable trigger but in
// the muted class so readers can tell it apart without opening it.
const (
	FAQClassHasContent = "faq-trigger faq-trigger--has-content"
	FAQClassEmpty      = "faq-trigger faq-trigger--empty"
)
