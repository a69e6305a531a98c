// Package apperrors defines the error taxonomy shared by aggregation, ranking,
// prediction and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an error; it drives the HTTP status and metric labels.
type Kind string

const (
	// KindMalformedInput indicates a bad source document (HTTP 422)
	KindMalformedInput Kind = "malformed_input"
	// KindInvalidSelection indicates an empty or unknown feature filter or metric (HTTP 400)
	KindInvalidSelection Kind = "invalid_selection"
	// KindInvalidInput indicates empty prediction text or a bad request body (HTTP 400)
	KindInvalidInput Kind = "invalid_input"
	// KindArtifactLoad indicates missing or corrupt model files (HTTP 503)
	KindArtifactLoad Kind = "artifact_load"
	// KindInternal indicates anything else (HTTP 500)
	KindInternal Kind = "internal"
)

// Sentinels for errors.Is checks. They match any *Error of the same kind.
var (
	ErrMalformedInput   = &Error{Kind: KindMalformedInput}
	ErrInvalidSelection = &Error{Kind: KindInvalidSelection}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrArtifactLoad     = &Error{Kind: KindArtifactLoad}
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind so callers can test against the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidSelection, KindInvalidInput:
		return http.StatusBadRequest
	case KindMalformedInput:
		return http.StatusUnprocessableEntity
	case KindArtifactLoad:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithContext adds a context field (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func MalformedInput(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedInput, Message: fmt.Sprintf(format, args...)}
}

func InvalidSelection(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidSelection, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func ArtifactLoad(message string, cause error) *Error {
	return &Error{Kind: KindArtifactLoad, Message: message, Cause: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// Response is the JSON body sent to API clients.
type Response struct {
	Error   string         `json:"error"`
	Type    Kind           `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *Error) ToResponse() Response {
	return Response{Error: e.Message, Type: e.Kind, Context: e.Context}
}

// As converts any error into an *Error, wrapping unknown errors as internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}
