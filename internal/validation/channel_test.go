package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/organizations/internal/errs"
	"github.com/deppfellow/organizations/internal/model"
	"github.com/deppfellow/organizations/internal/validation"
)

const validUUID = "3f1c2a8e-6b2d-4f0a-9c1e-7d5b8a9e0f12"

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestMiddlewareParams(t *testing.T) {
	mw := validation.Middleware[model.OrganizationParams](validation.ChannelParams)

	t.Run("valid uuid reaches handler", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/organizations/1/"+validUUID, "")
		c.SetParamNames("uuid")
		c.SetParamValues(validUUID)

		called := false
		err := mw(func(c echo.Context) error {
			called = true
			p, err := validation.Payload[*model.OrganizationParams](c, validation.ChannelParams)
			require.NoError(t, err)
			assert.Equal(t, validUUID, p.UUID)
			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("invalid uuid short-circuits", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/organizations/1/nope", "")
		c.SetParamNames("uuid")
		c.SetParamValues("nope")

		err := mw(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)

		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Equal(t, []errs.FieldError{{Field: "uuid", Error: "must be a valid UUID"}}, httpErr.Errors)
	})

	t.Run("missing uuid short-circuits", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/organizations/1/", "")

		err := mw(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)

		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Equal(t, []errs.FieldError{{Field: "uuid", Error: "is required"}}, httpErr.Errors)
	})
}

func TestMiddlewareBody(t *testing.T) {
	mw := validation.Middleware[model.OrganizationBody](validation.ChannelBody)

	t.Run("valid body", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/organizations/1", `{"name":"Acme Corporation","sname":"acme"}`)

		err := mw(func(c echo.Context) error {
			b, err := validation.Payload[*model.OrganizationBody](c, validation.ChannelBody)
			require.NoError(t, err)
			assert.Equal(t, "Acme Corporation", b.Name)
			assert.Equal(t, "acme", b.SName)
			return nil
		})(c)
		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/organizations/1", `{"name":""}`)

		err := mw(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)

		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.ElementsMatch(t, []errs.FieldError{
			{Field: "name", Error: "is required"},
			{Field: "sname", Error: "is required"},
		}, httpErr.Errors)
		assert.True(t, httpErr.Override)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/organizations/1", `{"name":`)

		err := mw(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)

		requireHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("blank name", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/organizations/1", `{"name":"   ","sname":"acme"}`)

		err := mw(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)

		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Equal(t, []errs.FieldError{{Field: "name", Error: "must not be blank"}}, httpErr.Errors)
	})

	t.Run("too long sname", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, "/organizations/1", `{"name":"Acme","sname":"`+strings.Repeat("a", 65)+`"}`)

		err := mw(func(c echo.Context) error { return nil })(c)

		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Equal(t, []errs.FieldError{{Field: "sname", Error: "must not exceed 64 characters"}}, httpErr.Errors)
	})
}

func TestMiddlewareQuery(t *testing.T) {
	mw := validation.Middleware[model.OrganizationQuery](validation.ChannelQuery)

	t.Run("optional filters", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/organizations/1?name=acme&status=active", "")

		err := mw(func(c echo.Context) error {
			q, err := validation.Payload[*model.OrganizationQuery](c, validation.ChannelQuery)
			require.NoError(t, err)

			filter := q.Filter()
			require.NotNil(t, filter.Name)
			assert.Equal(t, "acme", *filter.Name)
			assert.Nil(t, filter.SName)
			require.NotNil(t, filter.Status)
			assert.Equal(t, "active", *filter.Status)
			return nil
		})(c)
		assert.NoError(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/organizations/1?status=archived", "")

		err := mw(func(c echo.Context) error { return nil })(c)

		httpErr := requireHTTPError(t, err, http.StatusBadRequest)
		assert.Equal(t, []errs.FieldError{{Field: "status", Error: "must be one of: active inactive"}}, httpErr.Errors)
	})
}

func TestPayloadWithoutMiddleware(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/organizations/1", "")

	_, err := validation.Payload[*model.OrganizationBody](c, validation.ChannelBody)
	requireHTTPError(t, err, http.StatusInternalServerError)
}
