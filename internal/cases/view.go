package cases

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// View projects the dataset through the selected category. It is a value:
// Select returns a new View and never modifies the receiver.
type View struct {
	ds       *Dataset
	selected string
}

// NewView selects the first category of ds.
func NewView(ds *Dataset) View {
	return View{ds: ds, selected: ds.First().Name}
}

// Select returns a view showing the named category. An unknown name is
// rejected with ErrUnknownCategory.
func (v View) Select(name string) (View, error) {
	if name == v.selected {
		return v, nil
	}
	if _, err := v.ds.Category(name); err != nil {
		return v, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return View{ds: v.ds, selected: name}, nil
}

// Selected returns the selected category name.
func (v View) Selected() string {
	return v.selected
}

// Categories returns every category name, for the selector.
func (v View) Categories() []string {
	return v.ds.Names()
}

// StatusCell is a status value paired with its style.
type StatusCell struct {
	Status MemoryStatus
	Style  Style
}

// FAQSection holds the FAQs of one axis. Only non-empty sections exist.
type FAQSection struct {
	Axis  Axis
	Title string
	FAQs  []FAQ
}

// FAQAffordance describes the per-row FAQ trigger and its modal content.
type FAQAffordance struct {
	HasContent bool
	Class      string
	Sections   []FAQSection
}

// Row is one rendered case.
type Row struct {
	ID                int
	Info              string
	TemporaryBanished StatusCell
	FlipFaceDown      StatusCell
	FAQ               FAQAffordance
}

// Rows returns one row per case of the selected category, in dataset order.
func (v View) Rows() ([]Row, error) {
	cat, err := v.ds.Category(v.selected)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(cat.Items))
	for _, c := range cat.Items {
		row, err := NewRow(c)
		if err != nil {
			return nil, fmt.Errorf("category %q: case %d: %w", cat.Name, c.ID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// NewRow builds the row for a single case.
func NewRow(c Case) (Row, error) {
	tb, err := statusCell(c.Status(AxisTemporaryBanished))
	if err != nil {
		return Row{}, err
	}
	fd, err := statusCell(c.Status(AxisFlipFaceDown))
	if err != nil {
		return Row{}, err
	}
	return Row{
		ID:                c.ID,
		Info:              c.Info,
		TemporaryBanished: tb,
		FlipFaceDown:      fd,
		FAQ:               faqAffordance(c),
	}, nil
}

func statusCell(s MemoryStatus) (StatusCell, error) {
	style, err := StatusStyle(s)
	if err != nil {
		return StatusCell{}, err
	}
	return StatusCell{Status: s, Style: style}, nil
}

func faqAffordance(c Case) FAQAffordance {
	var sections []FAQSection
	for _, axis := range Axes {
		faqs := c.FAQs(axis)
		if len(faqs) == 0 {
			continue
		}
		sections = append(sections, FAQSection{Axis: axis, Title: axis.Title(), FAQs: faqs})
	}

	a := FAQAffordance{Sections: sections, Class: FAQClassEmpty}
	if len(sections) > 0 {
		a.HasContent = true
		a.Class = FAQClassHasContent
	}
	return a
}
