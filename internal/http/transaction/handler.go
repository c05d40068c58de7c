package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/logger"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func parseFilter(q url.Values) (transaction.ListFilter, error) {
	filter := transaction.ListFilter{}

	if s := q.Get("type"); s != "" {
		t := transaction.Type(s)
		if !t.Valid() {
			return filter, fmt.Errorf("invalid type %q", s)
		}

		filter.Type = &t
	}

	if s := q.Get("status"); s != "" {
		st := transaction.Status(s)
		if !st.Valid() {
			return filter, fmt.Errorf("invalid status %q", s)
		}

		filter.Status = &st
	}

	if s := q.Get("category"); s != "" {
		filter.Category = new(s)
	}

	var err error

	if filter.StartDate, err = dateParam(q, "start_date"); err != nil {
		return filter, err
	}

	if filter.EndDate, err = dateParam(q, "end_date"); err != nil {
		return filter, err
	}

	return filter, nil
}

// dateParam reads an optional date query parameter in any format the
// importer accepts.
func dateParam(q url.Values, key string) (*string, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}

	d, ok := ingest.NormalizeDate(s)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}

	return &d, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to list transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, ToResponseList(txs))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.svc.Summary(r.Context(), filter)
	if err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to summarize transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, ToStatsResponse(stats))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, ToResponse(*tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
