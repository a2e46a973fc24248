package cases

import "memorytable/internal/snapshot"

// Fixed page copy.
const (
	PageTitle     = "Information that monster(s) remembers or forgets after being temporary banished or flipped face-down"
	PageNotice    = "The information on this page is sourced from the OCG. Some or all of it may not apply to the TCG."
	ContributeURL = "https://github.com/satellaa/monster-memory-cases"
)

// TableHeaders are the column headings of the case table.
var TableHeaders = [4]string{"Information on the card", "Temporary Banished", "Flipped Face-down", "FAQ"}

// Frame captures what the view currently shows for the snapshot exporter.
func (v View) Frame() (*snapshot.Frame, error) {
	rows, err := v.Rows()
	if err != nil {
		return nil, err
	}

	f := &snapshot.Frame{
		Title:    PageTitle,
		Subtitle: PageNotice,
		Category: v.selected,
		Headers:  TableHeaders,
		Rows:     make([]snapshot.Row, len(rows)),
	}
	for i, r := range rows {
		f.Rows[i] = snapshot.Row{
			Info:              r.Info,
			TemporaryBanished: snapshot.Label{Text: string(r.TemporaryBanished.Status), Color: r.TemporaryBanished.Style.Color},
			FlipFaceDown:      snapshot.Label{Text: string(r.FlipFaceDown.Status), Color: r.FlipFaceDown.Style.Color},
			HasFAQ:            r.FAQ.HasContent,
		}
	}
	return f, nil
}
