package directoryhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/directory"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/shared"
)

type Handler struct {
	Store *directory.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *directory.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/directory", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms))
		r.Get("/departments", h.handleListDepartments)
		r.Get("/teams", h.handleListTeams)
		r.Get("/employees", h.handleListEmployees)
		r.Get("/employees/{employeeID}", h.handleGetEmployee)
		r.Get("/badges", h.handleSearchBadges)
	})
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context(), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_list_failed", "failed to list teams", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, teams, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	employees, err := h.Store.ListEmployees(r.Context(), r.URL.Query().Get("departmentId"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSearchBadges(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	badges, err := h.Store.SearchBadges(r.Context(), r.URL.Query().Get("q"), page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "badge_search_failed", "failed to search badges", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, badges, middleware.GetRequestID(r.Context()))
}
