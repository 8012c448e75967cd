package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"classregistration/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeValidation    = "validation"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeNotFound      = "not_found"
	ErrCodeUpstream      = "upstream"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeError(w, statusCode, &APIError{Code: code, Message: message})
}

func writeError(w http.ResponseWriter, statusCode int, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: nil, Error: apiErr})
}

var kindStatus = map[domain.ErrorKind]struct {
	status int
	code   string
}{
	domain.KindValidation:  {http.StatusBadRequest, ErrCodeValidation},
	domain.KindNotFound:    {http.StatusNotFound, ErrCodeNotFound},
	domain.KindPersistence: {http.StatusInternalServerError, ErrCodeInternalError},
	domain.KindUpstream:    {http.StatusBadGateway, ErrCodeUpstream},
}

// WriteWorkflowError maps a workflow failure to its status code. Only the user-facing message
// is written; field details are added for validation failures. Any other error is a 500
// with a generic message.
func WriteWorkflowError(w http.ResponseWriter, err error) {
	var wf *domain.WorkflowError
	if !errors.As(err, &wf) {
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "Something went wrong. Please try again.")
		return
	}
	m, ok := kindStatus[wf.Kind]
	if !ok {
		m = kindStatus[domain.KindPersistence]
	}
	apiErr := &APIError{Code: m.code, Message: wf.Message}
	var ve *domain.ValidationError
	if errors.As(wf.Err, &ve) {
		apiErr.Fields = ve.Fields
	}
	writeError(w, m.status, apiErr)
}
