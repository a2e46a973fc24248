package cases

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
)

// CategorySummary is a category name with its case count.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Service answers read-only queries over the shared dataset.
type Service struct {
	ds *Dataset
	md goldmark.Markdown
}

func NewService(ds *Dataset) *Service {
	return &Service{
		ds: ds,
		md: goldmark.New(),
	}
}

// View returns the view for the named category. An empty name selects the
// first category.
func (s *Service) View(category string) (View, error) {
	v := NewView(s.ds)
	if category == "" {
		return v, nil
	}
	return v.Select(category)
}

// ListCategories returns every category with its case count, in dataset order.
func (s *Service) ListCategories() []CategorySummary {
	cats := s.ds.Categories()
	out := make([]CategorySummary, len(cats))
	for i, c := range cats {
		out[i] = CategorySummary{Name: c.Name, Count: len(c.Items)}
	}
	return out
}

// Cases returns the cases of a category.
func (s *Service) Cases(category string) ([]Case, error) {
	cat, err := s.ds.Category(category)
	if err != nil {
		return nil, err
	}
	return cat.Items, nil
}

// Case returns a single case.
func (s *Service) Case(category string, id int) (Case, error) {
	return s.ds.Case(category, id)
}

// RenderMarkdown converts markdown content to HTML. Raw HTML in the input
// is not passed through.
func (s *Service) RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return "<p>" + html.EscapeString(content) + "</p>"
	}
	return buf.String()
}
