package corehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"craftadmin/internal/domain/auth"
	"craftadmin/internal/domain/core"
	"craftadmin/internal/transport/http/api"
	"craftadmin/internal/transport/http/middleware"
	"craftadmin/internal/transport/http/shared"
)

type Handler struct {
	Store *core.Store
}

func NewHandler(store *core.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{employeeID}", h.handleDeleteEmployee)
	})
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.handleListCustomers)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreateCustomer)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{customerID}", h.handleUpdateCustomer)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{customerID}", h.handleDeleteCustomer)
	})
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.handleListProjects)
		r.Get("/{projectID}", h.handleGetProject)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreateProject)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{projectID}", h.handleUpdateProject)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{projectID}", h.handleDeleteProject)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload core.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Enum("status", payload.Status, []string{core.EmployeeStatusActive, core.EmployeeStatusInactive}, "must be active or inactive")
	if v.Reject(w, reqID) {
		return
	}
	if payload.Status == "" {
		payload.Status = core.EmployeeStatusActive
	}

	id, err := h.Store.CreateEmployee(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload core.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Store.UpdateEmployee(r.Context(), employeeID, payload); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}
	api.Success(w, map[string]string{"id": employeeID}, reqID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}
	api.Success(w, nil, reqID)
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	customers, err := h.Store.ListCustomers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "customers_list_failed", "failed to list customers", reqID)
		return
	}
	api.Success(w, customers, reqID)
}

func (h *Handler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload core.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Store.CreateCustomer(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "customer_create_failed", "failed to create customer", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload core.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	customerID := chi.URLParam(r, "customerID")
	if err := h.Store.UpdateCustomer(r.Context(), customerID, payload); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "customer not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "customer_update_failed", "failed to update customer", reqID)
		return
	}
	api.Success(w, map[string]string{"id": customerID}, reqID)
}

func (h *Handler) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Store.DeleteCustomer(r.Context(), chi.URLParam(r, "customerID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "customer not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "customer_delete_failed", "failed to delete customer", reqID)
		return
	}
	api.Success(w, nil, reqID)
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "projects_list_failed", "failed to list projects", reqID)
		return
	}
	api.Success(w, projects, reqID)
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	project, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "project not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "project_get_failed", "failed to load project", reqID)
		return
	}
	api.Success(w, project, reqID)
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload core.Project
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Enum("status", payload.Status, []string{core.ProjectStatusPlanned, core.ProjectStatusActive, core.ProjectStatusCompleted}, "must be planned, active or completed")
	if v.Reject(w, reqID) {
		return
	}
	if payload.Status == "" {
		payload.Status = core.ProjectStatusPlanned
	}

	id, err := h.Store.CreateProject(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "project_create_failed", "failed to create project", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload core.Project
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	projectID := chi.URLParam(r, "projectID")
	if err := h.Store.UpdateProject(r.Context(), projectID, payload); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "project not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "project_update_failed", "failed to update project", reqID)
		return
	}
	api.Success(w, map[string]string{"id": projectID}, reqID)
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Store.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "project not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "project_delete_failed", "failed to delete project", reqID)
		return
	}
	api.Success(w, nil, reqID)
}
