package schedulehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"craftadmin/internal/domain/audit"
	"craftadmin/internal/domain/auth"
	"craftadmin/internal/domain/schedule"
	"craftadmin/internal/transport/http/api"
	"craftadmin/internal/transport/http/middleware"
	"craftadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *schedule.Service
	Audit   *audit.Service
}

func NewHandler(service *schedule.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

// record writes an audit trail entry for a schedule mutation. The trail is
// best-effort: a failed write is logged, never surfaced to the client.
func (h *Handler) record(r *http.Request, action, entityType, entityID string, details any) {
	if h.Audit == nil {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), user.ID, action, entityType, entityID, reqID, details); err != nil {
		slog.Warn("audit record failed", "action", action, "entityType", entityType, "entityId", entityID, "err", err)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/working-hours", func(r chi.Router) {
		r.Post("/", h.handleCreateInterval)
		r.Put("/{entryID}", h.handleUpdateInterval)
		r.Delete("/{entryID}", h.handleDeleteInterval)
	})
	r.Get("/employees/{employeeID}/working-hours", h.handleListIntervals)
	r.Get("/employees/{employeeID}/vacations", h.handleListAbsences)
	r.Get("/employees/{employeeID}/totals/daily", h.handleDailyTotals)
	r.Get("/employees/{employeeID}/totals/weekly", h.handleWeeklyTotals)
	r.Route("/vacations", func(r chi.Router) {
		r.Post("/", h.handleCreateAbsence)
		r.Post("/{entryID}/approve", h.handleApproveAbsence)
		r.Post("/{entryID}/reject", h.handleRejectAbsence)
		r.Delete("/{entryID}", h.handleDeleteAbsence)
	})
	r.Get("/availability/employee", h.handleCheckAvailability)
	r.Get("/availability/project", h.handleProjectAvailability)
}

type intervalPayload struct {
	EmployeeID   string `json:"employeeId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	BreakMinutes int    `json:"breakMinutes"`
	ProjectID    string `json:"projectId"`
	Notes        string `json:"notes"`
}

func (h *Handler) decodeInterval(w http.ResponseWriter, r *http.Request) (schedule.WorkInterval, bool) {
	reqID := middleware.GetRequestID(r.Context())

	var payload intervalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return schedule.WorkInterval{}, false
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	date, _ := v.Date("date", payload.Date)
	start, _ := v.Clock("startTime", payload.StartTime)
	end, _ := v.OptionalClock("endTime", payload.EndTime)
	if payload.BreakMinutes < 0 {
		v.Add("breakMinutes", "must not be negative")
	}
	if end != nil && *end <= start {
		v.Add("endTime", "must be after startTime")
	}
	if v.Reject(w, reqID) {
		return schedule.WorkInterval{}, false
	}

	return schedule.WorkInterval{
		EmployeeID:   payload.EmployeeID,
		Date:         date,
		Start:        start,
		End:          end,
		BreakMinutes: payload.BreakMinutes,
		ProjectID:    payload.ProjectID,
		Notes:        payload.Notes,
	}, true
}

func (h *Handler) handleCreateInterval(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	in, ok := h.decodeInterval(w, r)
	if !ok {
		return
	}

	id, err := h.Service.CreateInterval(r.Context(), in)
	if err != nil {
		h.failSchedule(w, err, "working_hours_create_failed", "failed to create working hours entry", reqID)
		return
	}
	h.record(r, audit.ActionCreate, audit.EntityWorkingHours, id, in)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateInterval(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	in, ok := h.decodeInterval(w, r)
	if !ok {
		return
	}

	entryID := chi.URLParam(r, "entryID")
	if err := h.Service.UpdateInterval(r.Context(), entryID, in); err != nil {
		h.failSchedule(w, err, "working_hours_update_failed", "failed to update working hours entry", reqID)
		return
	}
	h.record(r, audit.ActionUpdate, audit.EntityWorkingHours, entryID, in)
	api.Success(w, map[string]string{"id": entryID}, reqID)
}

func (h *Handler) handleDeleteInterval(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	entryID := chi.URLParam(r, "entryID")
	if err := h.Service.DeleteInterval(r.Context(), entryID); err != nil {
		h.failSchedule(w, err, "working_hours_delete_failed", "failed to delete working hours entry", reqID)
		return
	}
	h.record(r, audit.ActionDelete, audit.EntityWorkingHours, entryID, nil)
	api.Success(w, nil, reqID)
}

func (h *Handler) handleListIntervals(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	intervals, err := h.Service.ListIntervals(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "working_hours_list_failed", "failed to list working hours", reqID)
		return
	}
	api.Success(w, intervals, reqID)
}

func (h *Handler) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	query := r.URL.Query()
	v := shared.NewValidator()
	v.Required("employeeId", query.Get("employeeId"), "employee is required")
	date, _ := v.Date("date", query.Get("date"))
	start, _ := v.Clock("startTime", query.Get("startTime"))
	end, _ := v.OptionalClock("endTime", query.Get("endTime"))
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.CheckAvailability(r.Context(), query.Get("employeeId"), date, start, end, query.Get("excludeId"))
	if err != nil {
		h.failSchedule(w, err, "availability_check_failed", "failed to check availability", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleProjectAvailability(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	query := r.URL.Query()
	v := shared.NewValidator()
	v.Required("projectId", query.Get("projectId"), "project is required")
	date, _ := v.Date("date", query.Get("date"))
	if v.Reject(w, reqID) {
		return
	}

	committed, err := h.Service.ProjectSchedule(r.Context(), query.Get("projectId"), date, query.Get("excludeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "project_availability_failed", "failed to load project schedule", reqID)
		return
	}
	api.Success(w, committed, reqID)
}

type absencePayload struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Type       string `json:"type"`
	Notes      string `json:"notes"`
}

func (h *Handler) handleCreateAbsence(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload absencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", startDate, "endDate", endDate)
	v.Enum("type", payload.Type, schedule.AbsenceTypes, "must be vacation, sick_leave or other")
	if v.Reject(w, reqID) {
		return
	}

	absenceType := payload.Type
	if absenceType == "" {
		absenceType = schedule.AbsenceTypeVacation
	}

	absence := schedule.AbsenceRange{
		EmployeeID: payload.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Type:       absenceType,
		Status:     schedule.AbsenceStatusPending,
		Notes:      payload.Notes,
	}
	id, err := h.Service.CreateAbsence(r.Context(), absence)
	if err != nil {
		h.failSchedule(w, err, "vacation_create_failed", "failed to create vacation entry", reqID)
		return
	}
	h.record(r, audit.ActionCreate, audit.EntityVacation, id, absence)
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListAbsences(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	absences, err := h.Service.ListAbsences(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_list_failed", "failed to list vacation entries", reqID)
		return
	}
	api.Success(w, absences, reqID)
}

func (h *Handler) handleApproveAbsence(w http.ResponseWriter, r *http.Request) {
	h.setAbsenceStatus(w, r, schedule.AbsenceStatusApproved)
}

func (h *Handler) handleRejectAbsence(w http.ResponseWriter, r *http.Request) {
	h.setAbsenceStatus(w, r, schedule.AbsenceStatusRejected)
}

func (h *Handler) setAbsenceStatus(w http.ResponseWriter, r *http.Request, status string) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if user.Role != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", reqID)
		return
	}

	entryID := chi.URLParam(r, "entryID")
	if err := h.Service.SetAbsenceStatus(r.Context(), entryID, status); err != nil {
		h.failSchedule(w, err, "vacation_status_failed", "failed to update vacation status", reqID)
		return
	}
	action := audit.ActionApprove
	if status == schedule.AbsenceStatusRejected {
		action = audit.ActionReject
	}
	h.record(r, action, audit.EntityVacation, entryID, map[string]string{"status": status})
	api.Success(w, map[string]string{"id": entryID, "status": status}, reqID)
}

func (h *Handler) handleDeleteAbsence(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	entryID := chi.URLParam(r, "entryID")
	if err := h.Service.DeleteAbsence(r.Context(), entryID); err != nil {
		h.failSchedule(w, err, "vacation_delete_failed", "failed to delete vacation entry", reqID)
		return
	}
	h.record(r, audit.ActionDelete, audit.EntityVacation, entryID, nil)
	api.Success(w, nil, reqID)
}

func (h *Handler) handleDailyTotals(w http.ResponseWriter, r *http.Request) {
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

	totals, err := h.Service.DailyTotals(r.Context(), chi.URLParam(r, "employeeID"), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "totals_failed", "failed to compute daily totals", reqID)
		return
	}
	api.Success(w, totals, reqID)
}

func (h *Handler) handleWeeklyTotals(w http.ResponseWriter, r *http.Request) {
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

	totals, err := h.Service.WeeklyTotals(r.Context(), chi.URLParam(r, "employeeID"), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "totals_failed", "failed to compute weekly totals", reqID)
		return
	}
	api.Success(w, totals, reqID)
}

// failSchedule maps domain errors onto HTTP statuses: validation problems are
// 400, conflicts 409 with the full conflict listing, missing records 404.
func (h *Handler) failSchedule(w http.ResponseWriter, err error, code, message, reqID string) {
	var conflictErr *schedule.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		api.FailWithDetails(w, http.StatusConflict, "schedule_conflict", "the requested time collides with existing entries", conflictErr.Result, reqID)
	case errors.Is(err, schedule.ErrConflict):
		api.Fail(w, http.StatusConflict, "schedule_conflict", "the requested time collides with existing entries", reqID)
	case errors.Is(err, schedule.ErrInvalidInterval), errors.Is(err, schedule.ErrInvalidDateRange):
		api.Fail(w, http.StatusBadRequest, "invalid_interval", err.Error(), reqID)
	case errors.Is(err, schedule.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "entry not found", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}
