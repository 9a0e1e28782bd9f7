package reportshandler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"craftadmin/internal/domain/core"
	"craftadmin/internal/domain/reports"
	"craftadmin/internal/transport/http/api"
	"craftadmin/internal/transport/http/middleware"
	"craftadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/weekly", h.handleWeekly)
	r.Get("/reports/timesheet", h.handleTimesheet)
}

func (h *Handler) handleWeekly(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	v := shared.NewValidator()
	date, _ := v.Date("date", r.URL.Query().Get("date"))
	if v.Reject(w, reqID) {
		return
	}

	overview, err := h.Service.Weekly(r.Context(), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "weekly_report_failed", "failed to build weekly overview", reqID)
		return
	}
	api.Success(w, overview, reqID)
}

func (h *Handler) handleTimesheet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	query := r.URL.Query()
	v := shared.NewValidator()
	v.Required("employeeId", query.Get("employeeId"), "employee is required")
	date, _ := v.Date("date", query.Get("date"))
	if v.Reject(w, reqID) {
		return
	}

	pdfBytes, err := h.Service.TimesheetPDF(r.Context(), query.Get("employeeId"), date)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "timesheet_failed", "failed to generate timesheet", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=timesheet-%s.pdf", shared.FormatDate(date)))
	_, _ = w.Write(pdfBytes)
}
