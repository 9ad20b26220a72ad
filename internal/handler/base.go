package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/organizations/internal/errs"
	"github.com/deppfellow/organizations/internal/middleware"
	"github.com/deppfellow/organizations/internal/server"
)

// Handler holds the shared application dependencies. Concrete handlers
// embed it.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Result is the successful outcome of an endpoint: the status to write and
// the value rendered under "data".
type Result struct {
	Status int
	Data   any
}

// OK is a 200 result.
func OK(data any) Result {
	return Result{Status: http.StatusOK, Data: data}
}

// Created is a 201 result.
func Created(data any) Result {
	return Result{Status: http.StatusCreated, Data: data}
}

// Envelope is the body of every successful response.
type Envelope struct {
	Data any `json:"data"`
}

// Func is an endpoint that returns its outcome instead of writing it.
type Func func(c echo.Context) (Result, error)

// Handle adapts fn into an echo.HandlerFunc.
//
// A Result is written as {"data": ...} with its status. An error is logged,
// noticed on the New Relic transaction and forwarded to the global error
// handler as an *errs.HTTPError, keeping the status it carries or 500.
func Handle(operation string, fn Func) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		txn := newrelic.FromContext(c.Request().Context())
		if txn != nil {
			txn.AddAttribute("handler.name", operation)
		}

		logger := middleware.GetLogger(c).With().
			Str("operation", operation).
			Logger()

		result, err := fn(c)
		duration := time.Since(start)

		if err != nil {
			httpErr := errs.FromError(err, http.StatusInternalServerError)

			logger.Error().
				Err(err).
				Int("status", httpErr.Status).
				Dur("handler_duration", duration).
				Msg("handler execution failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("handler.status", "error")
				txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
			}

			return httpErr
		}

		if txn != nil {
			txn.AddAttribute("handler.status", "success")
			txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
		}

		logger.Debug().
			Int("status", result.Status).
			Dur("handler_duration", duration).
			Msg("request handled")

		return c.JSON(result.Status, Envelope{Data: result.Data})
	}
}
