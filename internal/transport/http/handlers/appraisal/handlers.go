package appraisalhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/audit"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/directory"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/notifications"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service   *appraisal.Service
	Directory *directory.Store
	Perms     middleware.PermissionStore
	Notify    *notifications.Service
	Audit     *audit.Service
}

func NewHandler(service *appraisal.Service, dir *directory.Store, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Directory: dir, Perms: perms, Notify: notify, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/{appraisalID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)).Delete("/{appraisalID}", h.handleDelete)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/{appraisalID}/lines", h.handleLines)
		r.With(middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)).Put("/{appraisalID}/employee", h.handleSelectEmployee)
		r.With(middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)).Put("/{appraisalID}/evaluation-type", h.handleSelectEvaluationType)
		r.With(middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)).Put("/{appraisalID}/template", h.handleSelectTemplate)
		r.With(middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)).Post("/{appraisalID}/criteria/load", h.handleLoadCriteria)
		r.With(middleware.RequirePermission(auth.PermAppraisalScore, h.Perms)).Put("/{appraisalID}/actuals", h.handleRecordActuals)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/{appraisalID}/score", h.handleScore)
		r.With(middleware.RequirePermission(auth.PermAppraisalScore, h.Perms)).Post("/{appraisalID}/finalize", h.handleFinalize)
	})
}

// failDomain maps domain sentinel errors onto HTTP statuses.
func failDomain(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, appraisal.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "appraisal_not_found", "appraisal not found", requestID)
	case errors.Is(err, appraisal.ErrEmployeeRequired):
		api.Fail(w, http.StatusBadRequest, "employee_required", "a valid employee is required", requestID)
	case errors.Is(err, appraisal.ErrEvaluationTypeRequired):
		api.Fail(w, http.StatusBadRequest, "evaluation_type_required", "a valid evaluation type is required", requestID)
	case errors.Is(err, appraisal.ErrTemplateRequired):
		api.Fail(w, http.StatusBadRequest, "template_required", "a valid template selection is required", requestID)
	case errors.Is(err, appraisal.ErrWeightageOutOfRange):
		api.Fail(w, http.StatusUnprocessableEntity, "weightage_out_of_range", "criteria weightage must be between 0 and 100", requestID)
	case errors.Is(err, appraisal.ErrCriteriaNotLoaded):
		api.Fail(w, http.StatusConflict, "criteria_not_loaded", "criteria must be loaded first", requestID)
	case errors.Is(err, appraisal.ErrNoCriteriaMatched):
		api.Fail(w, http.StatusUnprocessableEntity, "no_criteria_matched", "no template lines matched the evaluation type and team", requestID)
	case errors.Is(err, appraisal.ErrAlreadyCompleted):
		api.Fail(w, http.StatusConflict, "appraisal_completed", "completed appraisals cannot be modified", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "appraisal_error", "appraisal operation failed", requestID)
	}
}

func (h *Handler) recordAudit(r *http.Request, action, appraisalID string, before, after any) {
	if h.Audit == nil {
		return
	}
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	err := h.Audit.Record(r.Context(), actorID, action, "appraisal", appraisalID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) employeeUserID(r *http.Request, employeeID string) string {
	if employeeID == "" {
		return ""
	}
	employee, err := h.Directory.GetEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Warn("employee lookup for notification failed", "err", err)
		return ""
	}
	return employee.UserID
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	query := r.URL.Query()
	items, err := h.Service.List(r.Context(), query.Get("employeeId"), query.Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appraisal_list_failed", "failed to list appraisals", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID       string `json:"employeeId"`
		BadgeCode        string `json:"badgeCode"`
		EvaluationTypeID string `json:"evaluationTypeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID == "" && payload.BadgeCode == "" {
		v.Add("employeeId", "employee id or badge code is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), appraisal.CreateRequest{
		EmployeeID:       payload.EmployeeID,
		BadgeCode:        payload.BadgeCode,
		EvaluationTypeID: payload.EvaluationTypeID,
	})
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.create", created.ID, nil, created)
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "appraisalID"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, a, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	before, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), appraisalID); err != nil {
		failDomain(w, r, err)
		return
	}
	h.recordAudit(r, "appraisal.delete", appraisalID, before, nil)
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Service.Lines(r.Context(), chi.URLParam(r, "appraisalID"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, lines, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSelectEmployee(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	var payload struct {
		EmployeeID string `json:"employeeId"`
		BadgeCode  string `json:"badgeCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	before, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	var updated appraisal.Appraisal
	if payload.EmployeeID != "" {
		updated, err = h.Service.SelectEmployee(r.Context(), appraisalID, payload.EmployeeID)
	} else {
		updated, err = h.Service.SelectBadge(r.Context(), appraisalID, payload.BadgeCode)
	}
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.select_employee", appraisalID, before, updated)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSelectEvaluationType(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	var payload struct {
		EvaluationTypeID string `json:"evaluationTypeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	before, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	updated, err := h.Service.SelectEvaluationType(r.Context(), appraisalID, payload.EvaluationTypeID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.select_evaluation_type", appraisalID, before, updated)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	var payload struct {
		TemplateType string `json:"templateType"`
		TemplateID   string `json:"templateId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("templateType", payload.TemplateType, "template type is required")
	v.Enum("templateType", payload.TemplateType, []string{"survey", "okr", "ninebox"}, "must be survey, okr or ninebox")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	before, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	updated, err := h.Service.SelectTemplate(r.Context(), appraisalID, payload.TemplateType, payload.TemplateID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.select_template", appraisalID, before, updated)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLoadCriteria(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	lines, err := h.Service.LoadCriteria(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	a, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.load_criteria", appraisalID, nil, map[string]any{"lineCount": len(lines)})
	if h.Notify != nil {
		if userID := h.employeeUserID(r, a.EmployeeID); userID != "" {
			if err := h.Notify.NotifyCriteriaLoaded(r.Context(), userID, appraisalID, a.SelectedTemplate, len(lines)); err != nil {
				slog.Warn("criteria loaded notification failed", "err", err)
			}
		}
	}

	api.Success(w, map[string]any{"appraisal": a, "lines": lines}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordActuals(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	var payload struct {
		Updates []appraisal.ActualUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.RecordActuals(r.Context(), appraisalID, payload.Updates)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.record_actuals", appraisalID, nil, summary)
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Score(r.Context(), chi.URLParam(r, "appraisalID"))
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	before, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	finalized, err := h.Service.Finalize(r.Context(), appraisalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}

	h.recordAudit(r, "appraisal.finalize", appraisalID, before, finalized)
	if h.Notify != nil {
		if userID := h.employeeUserID(r, finalized.EmployeeID); userID != "" {
			if err := h.Notify.NotifyAppraisalCompleted(r.Context(), userID, appraisalID, finalized.FinalScore, finalized.Rating); err != nil {
				slog.Warn("appraisal completed notification failed", "err", err)
			}
		}
	}

	api.Success(w, finalized, middleware.GetRequestID(r.Context()))
}
