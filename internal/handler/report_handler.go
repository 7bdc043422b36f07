package handler

import (
	"fmt"
	"net/http"

	"canteen/internal/model"
	"canteen/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler handles reporting requests.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Daily handles GET /api/reports/daily requests.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	totals, err := h.service.DailyTotals(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// Weekly handles GET /api/reports/weekly requests.
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	totals, err := h.service.WeeklyTotals(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// Overview handles GET /api/reports/overview requests.
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	overview, err := h.service.Overview(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// Export handles GET /api/reports/export requests with a CSV attachment.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	table, err := h.service.ExportPeriod(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	filename := fmt.Sprintf("coupons_%s_%s.csv", start, end)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if err := table.WriteCSV(w); err != nil {
		h.logger.Error().Err(err).Msg("failed to write export")
	}
}

func (h *ReportHandler) period(w http.ResponseWriter, r *http.Request) (model.Date, model.Date, bool) {
	q := r.URL.Query()
	start, err := model.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidPeriod, "start must be a YYYY-MM-DD date", h.logger)
		return model.Date{}, model.Date{}, false
	}
	end, err := model.ParseDate(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidPeriod, "end must be a YYYY-MM-DD date", h.logger)
		return model.Date{}, model.Date{}, false
	}
	return start, end, true
}
