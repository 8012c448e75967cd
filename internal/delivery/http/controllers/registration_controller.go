package controllers

import (
	"log/slog"
	"net/http"

	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/domain"
)

// RegisterResponse is the data returned by POST /registrations.
type RegisterResponse struct {
	Success        bool   `json:"success"`
	RegistrationID string `json:"registrationId"`
}

// RegisterSuccessResponse is the success response envelope for POST /registrations (201).
type RegisterSuccessResponse struct {
	Data  RegisterResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetRegistrationSuccessResponse is the success response envelope for GET /registrations/{id} (200).
type GetRegistrationSuccessResponse struct {
	Data  *domain.RegistrationWithEvent `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for a class
// @Description Validates the registration form and stores a pending registration. Every failed field is listed in error.fields.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body domain.RegistrationInput true "Registration form"
// @Success 201 {object} controllers.RegisterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegistrationInput
	if !helpers.DecodeJSON(w, r, &in) {
		return
	}
	id, err := c.Service.Register(r.Context(), in)
	if err != nil {
		helpers.WriteWorkflowError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{Success: true, RegistrationID: id})
}

// GetByID godoc
// @Summary Get a registration
// @Description Returns the registration and its event, as needed by the payment screen.
// @Tags registrations
// @Produce json
// @Param id path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.GetRegistrationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{id} [get]
func (c *RegistrationController) GetByID(w http.ResponseWriter, r *http.Request) {
	reg, err := c.Service.GetWithEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteWorkflowError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
