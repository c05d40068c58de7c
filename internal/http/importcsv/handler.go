package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httptx "github.com/MrJamesThe3rd/finny-import/internal/http/transaction"
	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/logger"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

// maxMemory is the part of a multipart upload kept in memory; the rest
// spills to temporary files.
const maxMemory = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	upload := r.With(middleware.AllowContentType("multipart/form-data"))
	upload.Post("/", h.preview)
	upload.Post("/detect", h.detect)

	r.With(middleware.AllowContentType("application/json")).Post("/confirm", h.confirm)
}

type validationResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type diagnosticResponse struct {
	Line     int             `json:"line"`
	Severity ingest.Severity `json:"severity"`
	Reason   ingest.Reason   `json:"reason"`
	Message  string          `json:"message"`
}

type previewResponse struct {
	Filename       string               `json:"filename"`
	Charset        string               `json:"charset"`
	Layout         ingest.Layout        `json:"layout"`
	FilenameLayout ingest.Layout        `json:"filename_layout,omitempty"`
	Rows           int                  `json:"rows"`
	Accepted       int                  `json:"accepted"`
	Rejected       int                  `json:"rejected"`
	Transactions   []httptx.Response    `json:"transactions"`
	Diagnostics    []diagnosticResponse `json:"diagnostics"`
	Stats          httptx.StatsResponse `json:"stats"`
}

type detectResponse struct {
	FilenameLayout  ingest.Layout        `json:"filename_layout,omitempty"`
	FilenameMatched bool                 `json:"filename_matched"`
	Layout          ingest.Layout        `json:"layout"`
	Columns         int                  `json:"columns"`
	DataStartLine   int                  `json:"data_start_line"`
	Diagnostics     []diagnosticResponse `json:"diagnostics"`
}

type confirmRequest struct {
	Transactions []httptx.Request `json:"transactions"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

func toDiagnostics(diags []ingest.Diagnostic) []diagnosticResponse {
	resp := make([]diagnosticResponse, len(diags))
	for i, d := range diags {
		resp[i] = diagnosticResponse{
			Line:     d.Line,
			Severity: d.Severity,
			Reason:   d.Reason,
			Message:  d.Message,
		}
	}

	return resp
}

// importStatus maps import errors to HTTP status codes.
func importStatus(err error) int {
	var typeErr *ingest.TypeError

	switch {
	case errors.Is(err, importer.ErrFileRejected):
		return http.StatusBadRequest
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingest.ErrTooFewLines), errors.As(err, &typeErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	file, name, ok := h.upload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), name, file)
	if err != nil {
		http.Error(w, err.Error(), importStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Filename:       report.Filename,
		Charset:        string(report.Charset),
		Layout:         report.Layout,
		FilenameLayout: report.FilenameLayout,
		Rows:           report.Rows,
		Accepted:       len(report.Transactions),
		Rejected:       report.Rejected(),
		Transactions:   httptx.ToResponseList(report.Transactions),
		Diagnostics:    toDiagnostics(report.Diagnostics),
		Stats:          httptx.ToStatsResponse(report.Stats()),
	})
}

func (h *Handler) detect(w http.ResponseWriter, r *http.Request) {
	file, name, ok := h.upload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	d, err := h.importSvc.Detect(name, file)
	if err != nil {
		http.Error(w, err.Error(), importStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, detectResponse{
		FilenameLayout:  d.FilenameLayout,
		FilenameMatched: d.FilenameMatched,
		Layout:          d.Classification.Layout,
		Columns:         d.Classification.Columns,
		DataStartLine:   d.Classification.DataStartLine,
		Diagnostics:     toDiagnostics(d.Classification.Diagnostics),
	})
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Transactions) == 0 {
		http.Error(w, "transactions field is required", http.StatusBadRequest)
		return
	}

	txs := make([]transaction.Transaction, len(req.Transactions))
	for i, t := range req.Transactions {
		txs[i] = t.Transaction()
	}

	if err := h.txSvc.SaveBatch(r.Context(), txs); err != nil {
		if errors.Is(err, transaction.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to save import", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, confirmResponse{Imported: len(txs)})
}

// upload extracts the "file" form field and runs the admissibility gate on
// its name and size. On failure it writes the response and returns false.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return nil, "", false
	}

	if v := h.importSvc.Validate(header.Filename, header.Size); !v.Valid {
		file.Close()
		writeJSON(w, http.StatusBadRequest, validationResponse{Valid: v.Valid, Error: v.Error})

		return nil, "", false
	}

	return file, header.Filename, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
