package cases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"memorytable/internal/snapshot"
)

type fakeExporter struct {
	data   []byte
	err    error
	frames []*snapshot.Frame
}

func (f *fakeExporter) Export(ctx context.Context, frame *snapshot.Frame) ([]byte, error) {
	f.frames = append(f.frames, frame)
	return f.data, f.err
}

func newTestHandler(ds *Dataset, exp Exporter) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(NewService(ds), exp, logger)
}

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// --- HTML helpers ---

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// --- Web handlers ---

func TestHomePageExampleScenario(t *testing.T) {
	h := newTestHandler(exampleDataset(), &fakeExporter{})

	rec := serve(h.HomePage, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := parseHTML(t, rec.Body.String())

	rows := findAll(doc, byClass("case-row"))
	require.Len(t, rows, 1)
	assert.Equal(t, "Card X", text(findAll(rows[0], byClass("case-info"))[0]))

	remembered := findAll(rows[0], byClass("status--remembered"))
	require.Len(t, remembered, 1)
	assert.Equal(t, "Remembered", text(remembered[0]))
	forgotten := findAll(rows[0], byClass("status--forgotten"))
	require.Len(t, forgotten, 1)
	assert.Equal(t, "Forgotten", text(forgotten[0]))

	sections := findAll(rows[0], byClass("faq-section"))
	require.Len(t, sections, 1)
	assert.Equal(t, "Flipped Face-Down:", text(findAll(sections[0], byTag("h4"))[0]))
	assert.Len(t, findAll(sections[0], byClass("faq-item")), 1)

	links := findAll(sections[0], byClass("source-link"))
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com", attr(links[0], "href"))
	assert.Equal(t, "_blank", attr(links[0], "target"))
	assert.Equal(t, "Ruling", text(links[0]))
}

func TestHomePageShell(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{})

	rec := serve(h.HomePage, "/?category=Attack")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec.Body.String())

	title := findAll(doc, byClass("card-title"))
	require.Len(t, title, 1)
	assert.Equal(t, PageTitle, text(title[0]))

	options := findAll(doc, byTag("option"))
	require.Len(t, options, 3)
	for _, o := range options {
		selected := attr(o, "value") == "Attack"
		hasAttr := false
		for _, a := range o.Attr {
			if a.Key == "selected" {
				hasAttr = true
			}
		}
		assert.Equal(t, selected, hasAttr, "option %q", attr(o, "value"))
	}

	export := findAll(doc, byClass("export-button"))
	require.Len(t, export, 1)
	assert.Equal(t, "/export.png?category=Attack", attr(export[0], "href"))
	assert.Equal(t, snapshot.FileName, attr(export[0], "download"))

	contribute := findAll(doc, byClass("contribute-link"))
	require.Len(t, contribute, 1)
	assert.Equal(t, ContributeURL, attr(contribute[0], "href"))
	assert.Equal(t, "noopener noreferrer", attr(contribute[0], "rel"))
}

func TestHomePageFAQSections(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{})

	rec := serve(h.HomePage, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := findAll(parseHTML(t, rec.Body.String()), byClass("case-row"))
	require.Len(t, rows, 3)

	// Rows without FAQs: muted trigger, empty dialog
	emptyTrigger := findAll(rows[0], byClass("faq-trigger"))[0]
	emptyDialog := findAll(rows[0], byTag("dialog"))[0]
	assert.Nil(t, emptyDialog.FirstChild)
	assert.Empty(t, attr(emptyTrigger, "disabled"))

	fullTrigger := findAll(rows[2], byClass("faq-trigger"))[0]
	assert.NotEqual(t, attr(emptyTrigger, "class"), attr(fullTrigger, "class"))

	sections := findAll(rows[2], byClass("faq-section"))
	require.Len(t, sections, 2)
	assert.Equal(t, "Temporary Banished:", text(findAll(sections[0], byTag("h4"))[0]))
	assert.Len(t, findAll(sections[0], byClass("faq-item")), 2)
	assert.Equal(t, "Flipped Face-Down:", text(findAll(sections[1], byTag("h4"))[0]))
	items := findAll(sections[1], byClass("faq-item"))
	require.Len(t, items, 1)
	assert.Len(t, findAll(items[0], byTag("em")), 1)
}

func TestHomePageUnknownCategory(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{})
	rec := serve(h.HomePage, "/?category=Nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHomePageOtherPath(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{})
	rec := serve(h.HomePage, "/favicon.ico")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTableFragment(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{})

	rec := serve(h.TableFragment, "/fragments/table?category=Empty")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec.Body.String())

	tables := findAll(doc, byClass("case-table"))
	require.Len(t, tables, 1)
	assert.Equal(t, "Empty", attr(tables[0], "data-category"))
	assert.Empty(t, findAll(doc, byClass("case-row")))
	assert.Len(t, findAll(doc, byTag("th")), 4)
	assert.Empty(t, findAll(doc, byClass("card-title")))
}

// --- Export ---

func TestExportImage(t *testing.T) {
	exp := &fakeExporter{data: []byte("\x89PNG")}
	h := newTestHandler(multiDataset(), exp)

	rec := serve(h.ExportImage, "/export.png?category=Attack")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="monster-memory-table.png"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "\x89PNG", rec.Body.String())

	require.Len(t, exp.frames, 1)
	assert.Equal(t, "Attack", exp.frames[0].Category)
	assert.Len(t, exp.frames[0].Rows, 1)
}

func TestExportImageFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := NewHandler(NewService(multiDataset()), &fakeExporter{err: context.Canceled}, logger)

	rec := serve(h.ExportImage, "/export.png?category=Attack")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "export failed")
	assert.Contains(t, logs.String(), "category=Attack")
	assert.Contains(t, logs.String(), "context canceled")
}

func TestExportImageFailure(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{err: errors.New("boom")})

	rec := serve(h.ExportImage, "/export.png")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// The page is still served after a failed export
	rec = serve(h.HomePage, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportImageUnknownCategory(t *testing.T) {
	exp := &fakeExporter{}
	h := newTestHandler(multiDataset(), exp)

	rec := serve(h.ExportImage, "/export.png?category=Nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, exp.frames)
}

// --- REST API ---

func TestListCategoriesAPI(t *testing.T) {
	h := newTestHandler(multiDataset(), &fakeExporter{})

	rec := serve(h.ListCategories, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []CategorySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 3)
	assert.Equal(t, "Monster", got[0].Name)
}

func TestCaseAPI(t *testing.T) {
	mux := http.NewServeMux()
	h := newTestHandler(exampleDataset(), &fakeExporter{})
	mux.HandleFunc("GET /api/categories/{name}/cases", h.ListCases)
	mux.HandleFunc("GET /api/categories/{name}/cases/{id}", h.GetCase)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"list", "/api/categories/Test/cases", http.StatusOK},
		{"list unknown category", "/api/categories/Nope/cases", http.StatusNotFound},
		{"get", "/api/categories/Test/cases/1", http.StatusOK},
		{"get unknown id", "/api/categories/Test/cases/9", http.StatusNotFound},
		{"get bad id", "/api/categories/Test/cases/x", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
