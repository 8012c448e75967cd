package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicatePayment   = errors.New("payment already recorded for registration")
	ErrReconciliationOpen = errors.New("open reconciliation already recorded for registration")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrorKind classifies a WorkflowError so the delivery layer can pick a status code.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindPersistence ErrorKind = "persistence"
	KindNotFound    ErrorKind = "not_found"
	KindUpstream    ErrorKind = "upstream"
)

// FieldError describes one field that violated its schema rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field of an input that failed validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// WorkflowError is the failure half of a workflow result. Message is safe to show an end
// user; Err keeps the internal cause for logs and errors.Is/As and never reaches Error().
type WorkflowError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WorkflowError) Error() string { return e.Message }

func (e *WorkflowError) Unwrap() error { return e.Err }

// NewWorkflowError builds a WorkflowError.
func NewWorkflowError(kind ErrorKind, message string, err error) *WorkflowError {
	return &WorkflowError{Kind: kind, Message: message, Err: err}
}

// PartialFailureError records that a payment was stored but its registration could not be
// moved to paid. It is meant for operators; the end user still sees a successful payment.
type PartialFailureError struct {
	PaymentID      string
	RegistrationID string
	Err            error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("payment %s stored but registration %s not marked paid: %v", e.PaymentID, e.RegistrationID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
