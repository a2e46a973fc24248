// Package server wires the HTTP routes of the case table.
package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"memorytable/internal/cases"
)

// Deps are the collaborators the router dispatches to. MCP and Static are
// optional.
type Deps struct {
	Cases  *cases.Handler
	MCP    *mcpserver.MCPServer
	Static fs.FS
	Log    *slog.Logger
}

// NewRouter builds the HTTP handler with its middleware chain.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Static files
	if d.Static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	// REST API endpoints (read-only)
	mux.HandleFunc("GET /api/categories", d.Cases.ListCategories)
	mux.HandleFunc("GET /api/categories/{name}/cases", d.Cases.ListCases)
	mux.HandleFunc("GET /api/categories/{name}/cases/{id}", d.Cases.GetCase)

	// Web UI
	mux.HandleFunc("GET /", d.Cases.HomePage)
	mux.HandleFunc("GET /fragments/table", d.Cases.TableFragment)
	mux.HandleFunc("GET /export.png", d.Cases.ExportImage)

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	if d.MCP != nil {
		mcpHTTP := mcpserver.NewStreamableHTTPServer(d.MCP)
		mux.Handle("POST /mcp", mcpHTTP)
		mux.Handle("GET /mcp", mcpHTTP)
		mux.Handle("DELETE /mcp", mcpHTTP)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	var h http.Handler = mux
	h = RequestLogger(d.Log)(h)
	h = middleware.Recoverer(h)
	h = middleware.RealIP(h)
	h = middleware.RequestID(h)
	return h
}
