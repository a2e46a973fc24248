package models

import "net/url"

// PageView is everything the home page renders
type PageView struct {
	Title         string
	Notice        string
	ContributeURL string
	Categories    []string
	Table         TableView
}

// TableView is the case table of the selected category
type TableView struct {
	Category string
	Headers  [4]string
	Rows     []RowView
}

// ExportURL is the snapshot download link for the table's category
func (t TableView) ExportURL() string {
	return "/export.png?category=" + url.QueryEscape(t.Category)
}

// RowView represents one case row
type RowView struct {
	ID                int
	Info              string
	TemporaryBanished StatusView
	FlipFaceDown      StatusView
	FAQ               FAQView
}

// StatusView is a status label with its CSS class
type StatusView struct {
	Label string
	Class string
}

// FAQView is the FAQ trigger and dialog of a row
type FAQView struct {
	DialogID   string
	HasContent bool
	Class      string
	Sections   []FAQSectionView
}

// FAQSectionView lists the FAQs of one mechanic
type FAQSectionView struct {
	Title string
	Items []FAQItemView
}

// FAQItemView holds pre-rendered question and answer HTML
type FAQItemView struct {
	QuestionHTML string
	AnswerHTML   string
	Sources      []SourceView
}

// SourceView is a labelled link
type SourceView struct {
	Text string
	URL  string
}
