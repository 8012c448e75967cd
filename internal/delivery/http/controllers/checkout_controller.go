package controllers

import (
	"log/slog"
	"net/http"

	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/domain"
)

type CheckoutController struct {
	Logger  *slog.Logger
	Service domain.CheckoutService
}

func NewCheckoutController(logger *slog.Logger, svc domain.CheckoutService) *CheckoutController {
	return &CheckoutController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Start hosted checkout
// @Description Creates a hosted checkout session for the class and redirects the browser to it.
// @Tags checkout
// @Produce json
// @Success 303 "Location: hosted checkout page"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream"
// @Router /checkout [post]
func (c *CheckoutController) Create(w http.ResponseWriter, r *http.Request) {
	url, err := c.Service.CreateCheckoutRedirect(r.Context())
	if err != nil {
		helpers.WriteWorkflowError(w, err)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
