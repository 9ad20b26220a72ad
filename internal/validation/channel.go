package validation

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/organizations/internal/errs"
)

// Channel is one of the three untyped input sources of a request.
type Channel string

const (
	ChannelQuery  Channel = "query"
	ChannelBody   Channel = "body"
	ChannelParams Channel = "params"
)

var binder = &echo.DefaultBinder{}

func bindChannel(c echo.Context, channel Channel, payload any) error {
	switch channel {
	case ChannelQuery:
		return binder.BindQueryParams(c, payload)
	case ChannelBody:
		return binder.BindBody(c, payload)
	case ChannelParams:
		return binder.BindPathParams(c, payload)
	default:
		return fmt.Errorf("unknown validation channel %q", channel)
	}
}

func contextKey(channel Channel) string {
	return "validated." + string(channel)
}

// Middleware validates one request channel into a fresh *T before the
// route handler runs. On failure the error goes to the global error
// handler and the route handler is never invoked. On success the payload
// is available through Payload.
//
//	g.PATCH("/:uuid", h.Update,
//		validation.Middleware[model.OrganizationParams](validation.ChannelParams),
//		validation.Middleware[model.OrganizationBody](validation.ChannelBody))
func Middleware[T any, PT interface {
	*T
	Validatable
}](channel Channel) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			payload := PT(new(T))
			if err := BindAndValidate(c, channel, payload); err != nil {
				return err
			}

			c.Set(contextKey(channel), payload)
			return next(c)
		}
	}
}

// Payload returns the payload validated by Middleware for channel.
// It returns a 500 when the route was registered without that middleware.
func Payload[PT Validatable](c echo.Context, channel Channel) (PT, error) {
	payload, ok := c.Get(contextKey(channel)).(PT)
	if !ok {
		var zero PT
		return zero, errs.New(http.StatusInternalServerError, fmt.Sprintf("no validated %s payload for route %s", channel, c.Path()))
	}
	return payload, nil
}
