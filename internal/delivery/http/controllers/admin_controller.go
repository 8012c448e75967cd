package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/delivery/http/middleware"
	"classregistration/internal/domain"
)

// AdminLoginRequest is the request body for POST /admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse is the data returned by POST /admin/login.
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// ListReconciliationsResponse is the data returned by GET /admin/reconciliations.
type ListReconciliationsResponse struct {
	Items      []*domain.PaymentReconciliation `json:"items"`
	Pagination helpers.PaginationMeta          `json:"pagination"`
}

type AdminController struct {
	Logger          *slog.Logger
	Auth            domain.AdminAuthService
	Reconciliations domain.ReconciliationService
}

func NewAdminController(logger *slog.Logger, auth domain.AdminAuthService, recs domain.ReconciliationService) *AdminController {
	return &AdminController{
		Logger:          logger,
		Auth:            auth,
		Reconciliations: recs,
	}
}

// Login godoc
// @Summary Operator login
// @Description Exchanges the operator password for a bearer token used by the /admin endpoints.
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body controllers.AdminLoginRequest true "Operator password"
// @Success 200 {object} helpers.APIResponse "data.token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	token, err := c.Auth.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "login failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AdminLoginResponse{Token: token})
}

// ListReconciliations godoc
// @Summary List payments awaiting reconciliation
// @Description Lists payments whose registration could not be marked paid, oldest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data.items and data.pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reconciliations [get]
func (c *AdminController) ListReconciliations(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	items, total, err := c.Reconciliations.ListOpen(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list reconciliations")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListReconciliationsResponse{
		Items:      items,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// RetryReconciliation godoc
// @Summary Retry marking a registration paid
// @Description Re-attempts the registration status update for one reconciliation record and resolves it on success.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reconciliation ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is the reconciliation record"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reconciliations/{id}/retry [post]
func (c *AdminController) RetryReconciliation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	subject, _ := middleware.SubjectFromContext(r.Context())
	c.Logger.InfoContext(r.Context(), "reconciliation retry requested", "reconciliation_id", id, "subject", subject)

	rec, err := c.Reconciliations.Retry(r.Context(), id)
	if err != nil {
		helpers.WriteWorkflowError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}
