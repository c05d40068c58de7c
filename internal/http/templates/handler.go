package templates

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{layout}", h.download)
}

type templateResponse struct {
	Layout   ingest.Layout `json:"layout"`
	Filename string        `json:"filename"`
	Header   []string      `json:"header"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	resp := make([]templateResponse, 0, len(ingest.Layouts))

	for _, l := range ingest.Layouts {
		header, _, err := ingest.TemplateRows(l)
		if err != nil {
			continue
		}

		resp = append(resp, templateResponse{
			Layout:   l,
			Filename: ingest.TemplateFilename(l),
			Header:   header,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	layout, err := ingest.ParseLayout(chi.URLParam(r, "layout"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	content, err := ingest.Template(layout)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ingest.TemplateFilename(layout)))

	if _, err := w.Write([]byte(content)); err != nil {
		slog.Error("failed to write template", "error", err)
	}
}
