// Package apierror provides the error taxonomy and the standardized error
// response envelope for the API. All errors returned to clients go through
// this package so that internal details (stack traces, store errors) never
// leak to a terminal.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error so handlers can map it to an HTTP status
// without string matching.
type Kind int

const (
	KindInterno Kind = iota
	KindValidacion
	KindConflicto
	KindNoEncontrado
	KindPermiso
	KindSinSesion
)

// Error is a domain error with a human-readable detail message.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Validacion(msg string) *Error   { return &Error{Kind: KindValidacion, Detail: msg} }
func Conflicto(msg string) *Error    { return &Error{Kind: KindConflicto, Detail: msg} }
func NoEncontrado(msg string) *Error { return &Error{Kind: KindNoEncontrado, Detail: msg} }
func Permiso(msg string) *Error      { return &Error{Kind: KindPermiso, Detail: msg} }
func SinSesion(msg string) *Error    { return &Error{Kind: KindSinSesion, Detail: msg} }

// KindOf extracts the kind of err, or KindInterno for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInterno
}

// StatusCode maps a domain error to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidacion:
		return http.StatusBadRequest
	case KindConflicto, KindSinSesion:
		return http.StatusConflict
	case KindNoEncontrado:
		return http.StatusNotFound
	case KindPermiso:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
