package controllers

import (
	"log/slog"
	"net/http"

	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/domain"
)

// PayResponse is the data returned by POST /payments.
type PayResponse struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId"`
}

// PaySuccessResponse is the success response envelope for POST /payments (201).
type PaySuccessResponse struct {
	Data  PayResponse       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{
		Logger:  logger,
		Service: svc,
	}
}

// Pay godoc
// @Summary Pay for a registration
// @Description Records the $49.00 class payment for a registration and marks it paid. Card details are checked for shape only and are never stored. Repeating the request returns the same payment id.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body domain.PaymentInput true "Payment form"
// @Success 201 {object} controllers.PaySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /payments [post]
func (c *PaymentController) Pay(w http.ResponseWriter, r *http.Request) {
	var in domain.PaymentInput
	if !helpers.DecodeJSON(w, r, &in) {
		return
	}
	id, err := c.Service.Pay(r.Context(), in)
	if err != nil {
		helpers.WriteWorkflowError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, PayResponse{Success: true, PaymentID: id})
}
