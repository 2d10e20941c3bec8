package templatehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *template.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *template.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermTemplateRead, h.Perms))
		r.Get("/evaluation-types", h.handleListEvaluationTypes)
		r.Get("/okr", h.handleListOKR)
		r.Get("/okr/{templateID}/lines", h.handleOKRLines)
		r.Get("/ninebox", h.handleListNinebox)
		r.Get("/ninebox/{templateID}/lines", h.handleNineboxLines)
		r.Get("/detect/{employeeID}", h.handleDetect)
	})
}

func (h *Handler) handleListEvaluationTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListEvaluationTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_type_list_failed", "failed to list evaluation types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListOKR(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListOKRTemplates(r.Context(), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListNinebox(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListNineboxTemplates(r.Context(), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOKRLines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lines, err := h.Service.OKRTemplateLines(r.Context(), chi.URLParam(r, "templateID"), query.Get("lineType"), query.Get("teamId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_line_list_failed", "failed to list template lines", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lines, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleNineboxLines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lines, err := h.Service.NineboxTemplateLines(r.Context(), chi.URLParam(r, "templateID"), query.Get("section"), query.Get("lineType"), query.Get("teamId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_line_list_failed", "failed to list template lines", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lines, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	detection, err := h.Service.Detect(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_detect_failed", "failed to detect template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, detection, middleware.GetRequestID(r.Context()))
}
