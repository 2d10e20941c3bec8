package sheethandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/audit"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/sheet"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/platform/metrics"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *appraisal.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Metrics *metrics.Collector
	Locale  string
}

func NewHandler(service *appraisal.Service, perms middleware.PermissionStore, auditSvc *audit.Service, collector *metrics.Collector, locale string) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Metrics: collector, Locale: locale}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermSheetRead, h.Perms)).Get("/appraisals/{appraisalID}/sheet", h.handleWorkbook)
	r.With(middleware.RequirePermission(auth.PermSheetWrite, h.Perms)).Post("/appraisals/{appraisalID}/sheet", h.handleApplyWorkbook)
	r.With(middleware.RequirePermission(auth.PermSheetRead, h.Perms)).Get("/appraisals/{appraisalID}/sheet/export", h.handleExportXLSX)
	r.With(middleware.RequirePermission(auth.PermSheetWrite, h.Perms)).Post("/appraisals/{appraisalID}/sheet/import", h.handleImportXLSX)
}

// loadSheetContext fetches the appraisal and its lines, rejecting
// survey appraisals and those without loaded criteria.
func (h *Handler) loadSheetContext(w http.ResponseWriter, r *http.Request) (appraisal.Appraisal, []appraisal.Line, bool) {
	appraisalID := chi.URLParam(r, "appraisalID")
	a, err := h.Service.Get(r.Context(), appraisalID)
	if err != nil {
		if errors.Is(err, appraisal.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "appraisal_not_found", "appraisal not found", middleware.GetRequestID(r.Context()))
		} else {
			api.Fail(w, http.StatusInternalServerError, "appraisal_error", "failed to load appraisal", middleware.GetRequestID(r.Context()))
		}
		return appraisal.Appraisal{}, nil, false
	}
	if a.TemplateType == template.TemplateTypeSurvey {
		api.Fail(w, http.StatusConflict, "sheet_unavailable", "survey appraisals have no criteria sheet", middleware.GetRequestID(r.Context()))
		return appraisal.Appraisal{}, nil, false
	}
	if !a.CriteriaLoaded {
		api.Fail(w, http.StatusConflict, "criteria_not_loaded", "criteria must be loaded first", middleware.GetRequestID(r.Context()))
		return appraisal.Appraisal{}, nil, false
	}

	lines, err := h.Service.Lines(r.Context(), appraisalID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appraisal_error", "failed to load criteria lines", middleware.GetRequestID(r.Context()))
		return appraisal.Appraisal{}, nil, false
	}
	return a, lines, true
}

func (h *Handler) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	a, lines, ok := h.loadSheetContext(w, r)
	if !ok {
		return
	}

	opts := sheet.Options{
		Locale:       h.Locale,
		LiveFormulas: r.URL.Query().Get("live") == "true",
	}
	wb := sheet.Build(lines, a.TemplateType, opts)
	api.Success(w, wb, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApplyWorkbook(w http.ResponseWriter, r *http.Request) {
	a, lines, ok := h.loadSheetContext(w, r)
	if !ok {
		return
	}

	var wb sheet.Workbook
	if err := json.NewDecoder(r.Body).Decode(&wb); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid workbook payload", middleware.GetRequestID(r.Context()))
		return
	}

	updates, err := sheet.ApplyActuals(wb, lines, a.TemplateType)
	if err != nil {
		api.Fail(w, http.StatusUnprocessableEntity, "workbook_parse_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.RecordActuals(r.Context(), a.ID, updates)
	if err != nil {
		if errors.Is(err, appraisal.ErrAlreadyCompleted) {
			api.Fail(w, http.StatusConflict, "appraisal_completed", "completed appraisals cannot be modified", middleware.GetRequestID(r.Context()))
		} else {
			api.Fail(w, http.StatusInternalServerError, "actuals_update_failed", "failed to record actual values", middleware.GetRequestID(r.Context()))
		}
		return
	}

	h.recordAudit(r, "sheet.apply", a.ID, map[string]any{"updatedLines": len(updates)})
	api.Success(w, map[string]any{"updatedLines": len(updates), "score": summary}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	a, lines, ok := h.loadSheetContext(w, r)
	if !ok {
		return
	}

	data, err := sheet.ExportXLSX(lines, a.TemplateType)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export workbook", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordSheetExport()
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="appraisal-criteria.xlsx"`)
	if _, err := w.Write(data); err != nil {
		slog.Warn("workbook download write failed", "err", err)
	}
}

func (h *Handler) handleImportXLSX(w http.ResponseWriter, r *http.Request) {
	a, lines, ok := h.loadSheetContext(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unable to read workbook payload", middleware.GetRequestID(r.Context()))
		return
	}

	updates, err := sheet.ImportXLSX(body, lines, a.TemplateType)
	if err != nil {
		api.Fail(w, http.StatusUnprocessableEntity, "workbook_parse_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordSheetImport()
	}

	summary, err := h.Service.RecordActuals(r.Context(), a.ID, updates)
	if err != nil {
		if errors.Is(err, appraisal.ErrAlreadyCompleted) {
			api.Fail(w, http.StatusConflict, "appraisal_completed", "completed appraisals cannot be modified", middleware.GetRequestID(r.Context()))
		} else {
			api.Fail(w, http.StatusInternalServerError, "actuals_update_failed", "failed to record actual values", middleware.GetRequestID(r.Context()))
		}
		return
	}

	h.recordAudit(r, "sheet.import", a.ID, map[string]any{"updatedLines": len(updates)})
	api.Success(w, map[string]any{"updatedLines": len(updates), "score": summary}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) recordAudit(r *http.Request, action, appraisalID string, after any) {
	if h.Audit == nil {
		return
	}
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	err := h.Audit.Record(r.Context(), actorID, action, "appraisal", appraisalID,
		middleware.GetRequestID(r.Context()), "", nil, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
