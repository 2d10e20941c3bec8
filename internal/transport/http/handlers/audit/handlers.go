package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/audit"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	query := r.URL.Query()
	events, err := h.Service.List(r.Context(), audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		EntityID:   query.Get("entityId"),
	}, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
