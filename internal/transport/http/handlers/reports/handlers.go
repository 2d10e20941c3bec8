package reportshandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/reports"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service     *reports.Service
	Appraisals  *appraisal.Service
	Perms       middleware.PermissionStore
	CompanyName string
}

func NewHandler(service *reports.Service, appraisals *appraisal.Service, perms middleware.PermissionStore, companyName string) *Handler {
	return &Handler{Service: service, Appraisals: appraisals, Perms: perms, CompanyName: companyName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermReportsRead, h.Perms))
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/appraisals/{appraisalID}/summary.pdf", h.handleSummaryPDF)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"company": h.CompanyName, "dashboard": dashboard}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	appraisalID := chi.URLParam(r, "appraisalID")
	a, err := h.Appraisals.Get(r.Context(), appraisalID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "appraisal_not_found", "appraisal not found", middleware.GetRequestID(r.Context()))
		return
	}

	lines, err := h.Appraisals.Lines(r.Context(), appraisalID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load criteria lines", middleware.GetRequestID(r.Context()))
		return
	}
	summary := appraisal.ComputeScores(lines, a.TemplateType)

	data, err := reports.SummaryPDF(a, lines, summary)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render summary", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="appraisal-summary.pdf"`)
	if _, err := w.Write(data); err != nil {
		slog.Warn("summary download write failed", "err", err)
	}
}
