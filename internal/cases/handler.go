package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"memorytable/internal/snapshot"
	"memorytable/views/components"
	"memorytable/views/models"
	"memorytable/views/pages"
)

// Exporter captures a frame as PNG bytes.
type Exporter interface {
	Export(ctx context.Context, frame *snapshot.Frame) ([]byte, error)
}

type Handler struct {
	svc      *Service
	exporter Exporter
	log      *slog.Logger
}

func NewHandler(svc *Service, exporter Exporter, log *slog.Logger) *Handler {
	return &Handler{svc: svc, exporter: exporter, log: log}
}

// --- REST API Handlers ---

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, h.svc.ListCategories(), http.StatusOK)
}

// ListCases handles GET /api/categories/{name}/cases
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Cases(r.PathValue("name"))
	if errors.Is(err, ErrCategoryNotFound) {
		h.jsonError(w, "category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to list cases", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, items, http.StatusOK)
}

// GetCase handles GET /api/categories/{name}/cases/{id}
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.jsonError(w, "invalid case ID", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Case(r.PathValue("name"), id)
	if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrCaseNotFound) {
		h.jsonError(w, "case not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to get case", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, c, http.StatusOK)
}

// --- Helper methods ---

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// view resolves the ?category= query parameter. Unknown categories are
// rejected rather than silently falling back to the first one.
func (h *Handler) view(w http.ResponseWriter, r *http.Request) (View, bool) {
	v, err := h.svc.View(r.URL.Query().Get("category"))
	if errors.Is(err, ErrUnknownCategory) {
		http.Error(w, "unknown category", http.StatusNotFound)
		return View{}, false
	}
	if err != nil {
		h.log.Error("failed to select category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return View{}, false
	}
	return v, true
}

// --- View model converters ---

func (h *Handler) tableView(v View) (models.TableView, error) {
	rows, err := v.Rows()
	if err != nil {
		return models.TableView{}, err
	}

	t := models.TableView{
		Category: v.Selected(),
		Headers:  TableHeaders,
		Rows:     make([]models.RowView, len(rows)),
	}
	for i, row := range rows {
		t.Rows[i] = models.RowView{
			ID:                row.ID,
			Info:              row.Info,
			TemporaryBanished: statusView(row.TemporaryBanished),
			FlipFaceDown:      statusView(row.FlipFaceDown),
			FAQ:               h.faqView(row),
		}
	}
	return t, nil
}

func statusView(c StatusCell) models.StatusView {
	return models.StatusView{Label: string(c.Status), Class: c.Style.Class}
}

func (h *Handler) faqView(row Row) models.FAQView {
	view := models.FAQView{
		DialogID:   fmt.Sprintf("faq-%d", row.ID),
		HasContent: row.FAQ.HasContent,
		Class:      row.FAQ.Class,
		Sections:   make([]models.FAQSectionView, len(row.FAQ.Sections)),
	}
	for i, s := range row.FAQ.Sections {
		items := make([]models.FAQItemView, len(s.FAQs))
		for j, faq := range s.FAQs {
			sources := make([]models.SourceView, len(faq.Sources))
			for k, src := range faq.Sources {
				sources[k] = models.SourceView{Text: src.Text, URL: src.URL}
			}
			items[j] = models.FAQItemView{
				QuestionHTML: h.svc.RenderMarkdown(faq.Question),
				AnswerHTML:   h.svc.RenderMarkdown(faq.Answer),
				Sources:      sources,
			}
		}
		view.Sections[i] = models.FAQSectionView{Title: s.Title, Items: items}
	}
	return view
}

// --- Web Handlers ---

// HomePage handles GET /
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}

	table, err := h.tableView(v)
	if err != nil {
		h.log.Error("failed to render rows", "category", v.Selected(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	page := models.PageView{
		Title:         PageTitle,
		Notice:        PageNotice,
		ContributeURL: ContributeURL,
		Categories:    v.Categories(),
		Table:         table,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.HomePage(page).Render(r.Context(), w); err != nil {
		h.log.Error("failed to write page", "error", err)
	}
}

// TableFragment handles GET /fragments/table (partial for in-place category switching)
func (h *Handler) TableFragment(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	table, err := h.tableView(v)
	if err != nil {
		h.log.Error("failed to render rows", "category", v.Selected(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Table(table).Render(r.Context(), w); err != nil {
		h.log.Error("failed to write table", "error", err)
	}
}

// ExportImage handles GET /export.png
func (h *Handler) ExportImage(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	frame, err := v.Frame()
	if err != nil {
		h.log.Error("failed to capture frame", "category", v.Selected(), "error", err)
		http.Error(w, "failed to export image", http.StatusInternalServerError)
		return
	}

	data, err := h.exporter.Export(r.Context(), frame)
	if err != nil {
		h.log.Warn("export failed", "category", v.Selected(), "error", err)
		http.Error(w, "failed to export image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snapshot.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
