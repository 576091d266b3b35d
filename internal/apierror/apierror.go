// Package apierror provides the error types shared by the service and HTTP
// layers. Services return a typed *Error; handlers map its Kind to an HTTP
// status. All responses to clients go through the envelope types here so
// internal details (stack traces, DB errors) are never leaked.
package apierror

import "net/http"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps per-field binding/validation failures.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "Error de validacion", Fields: fields}
}

// Kind classifies a domain error so the HTTP layer can pick a status without
// string-matching messages.
type Kind int

const (
	KindValidation   Kind = iota // malformed or out-of-range input
	KindConflict                 // uniqueness violation
	KindNotFound                 // referenced id absent or inactive
	KindBusinessRule             // valid input rejected by domain policy
)

// Error is a domain error with an HTTP-mappable kind.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindBusinessRule:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func Validation(detail string) *Error   { return &Error{Kind: KindValidation, Detail: detail} }
func Conflict(detail string) *Error     { return &Error{Kind: KindConflict, Detail: detail} }
func NotFound(detail string) *Error     { return &Error{Kind: KindNotFound, Detail: detail} }
func BusinessRule(detail string) *Error { return &Error{Kind: KindBusinessRule, Detail: detail} }
