package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vanshika/fintrace/backend/internal/ingress"
	"github.com/vanshika/fintrace/backend/internal/metrics"
	"github.com/vanshika/fintrace/backend/internal/service"
)

// APIHandlers binds the HTTP surface to the report service.
type APIHandlers struct {
	Service *service.ReportService
	Logger  *slog.Logger
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(svc *service.ReportService, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{Service: svc, Logger: logger}
}

// HandleAnalyze implements POST /analyze: accepts a raw CSV body or a
// multipart upload under field "file", runs ingress -> core -> cache ->
// best-effort export, and returns the stamped AnalysisReport as JSON.
func (h *APIHandlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	reader, err := h.extractCSVReader(r)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("invalid").Inc()
		respondError(w, http.StatusBadRequest, err)
		return
	}

	transactions, err := ingress.ParseCSV(reader)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("invalid").Inc()
		var verr *ingress.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr)
			return
		}
		respondError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.Service.Analyze(r.Context(), transactions)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("error").Inc()
		h.Logger.Error("analysis failed", "error", err)
		respondError(w, http.StatusInternalServerError, errors.New("analysis failed"))
		return
	}

	metrics.AnalysisRequestsTotal.WithLabelValues("success").Inc()
	respondJSON(w, http.StatusOK, report)
}

func (h *APIHandlers) extractCSVReader(r *http.Request) (io.Reader, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return r.Body, nil
}

// HandleGetReport implements GET /reports/{report_id}.
func (h *APIHandlers) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")
	report, ok := h.Service.GetReport(reportID)
	if !ok {
		respondError(w, http.StatusNotFound, errors.New("report not found"))
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
