// Package snapshot rasterizes the visible table view into a PNG image.
package snapshot

import "image/color"

// FileName is the name every exported image is downloaded as.
const FileName = "monster-memory-table.png"

// DefaultScale is the pixel density of exported images.
const DefaultScale = 2

// Label is a piece of coloured text.
type Label struct {
	Text  string
	Color color.RGBA
}

// Row is one table row as it appears on screen.
type Row struct {
	Info              string
	TemporaryBanished Label
	FlipFaceDown      Label
	HasFAQ            bool
}

// Frame is an immutable capture of the title, category selector and active
// table. It is taken when an export is triggered so later selection changes
// cannot tear the image.
type Frame struct {
	Title    string
	Subtitle string
	Category string
	Headers  [4]string
	Rows     []Row
}
