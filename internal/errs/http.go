package errs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "sname", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional instruction for the client (e.g. redirect to login).
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type rendered to API clients.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the client show Message verbatim.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError. Code and Status are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// StatusCode returns the HTTP status carried by the error.
func (e *HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// statusCoder is satisfied by any error that knows its own HTTP status.
type statusCoder interface {
	StatusCode() int
}

// New builds an HTTPError for an arbitrary status.
func New(status int, message string) *HTTPError {
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// FromError normalizes err into an *HTTPError.
//
// The status is taken from the error chain when something in it carries one
// (an *HTTPError, an *echo.HTTPError or any error with StatusCode() int);
// otherwise defaultStatus is used. The message is always err's message.
// An *HTTPError found in the chain keeps its code, field errors and action.
func FromError(err error, defaultStatus int) *HTTPError {
	if err == nil {
		return nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Error() == err.Error() {
			return httpErr
		}
		return httpErr.WithMessage(err.Error())
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return New(echoErr.Code, message)
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return New(sc.StatusCode(), err.Error())
	}

	return New(defaultStatus, err.Error())
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
