package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/organizations/internal/errs"
)

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.UniqueViolation,
		Message:        "duplicate key value violates unique constraint",
		TableName:      "organizations",
		ConstraintName: "organizations_sname_key",
	}

	err := HandleError(fmt.Errorf("insert organization: %w", pgErr))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ORGANIZATION_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Organization with this Sname already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		TableName:  "organizations",
		ColumnName: "name",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ORGANIZATION_REQUIRED", httpErr.Code)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
}

func TestHandleErrorNoRows(t *testing.T) {
	t.Run("with table marker", func(t *testing.T) {
		err := HandleError(fmt.Errorf("table:organizations: %w", pgx.ErrNoRows))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Organization not found", httpErr.Message)
	})

	t.Run("without marker", func(t *testing.T) {
		err := HandleError(pgx.ErrNoRows)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Resource not found", httpErr.Message)
	})
}

func TestHandleErrorPassthroughAndFallback(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	src := errs.NewForbiddenError("nope", false)
	assert.Same(t, src, HandleError(src))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(errors.New("connection reset")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: pgerrcode.CheckViolation})))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "sname", extractColumnForUniqueViolation("unique_organizations_sname"))
	assert.Equal(t, "sname", extractColumnForUniqueViolation("organizations_sname_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
}
