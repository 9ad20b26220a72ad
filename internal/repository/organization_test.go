package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/organizations/internal/model"
)

const selectOrganizations = "SELECT uuid, name, sname, status, created_at, updated_at FROM organizations"

var (
	testUUID = "3f1c2a8e-6b2d-4f0a-9c1e-7d5b8a9e0f12"
	testTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
)

func organizationRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"uuid", "name", "sname", "status", "created_at", "updated_at"})
}

func newMockRepository(t *testing.T) (*OrganizationRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewOrganizationRepository(mock), mock
}

func strPtr(s string) *string { return &s }

func TestOrganizationRepository_List(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectOrganizations + " ORDER BY created_at DESC")).
			WillReturnRows(organizationRows().
				AddRow(testUUID, "Acme Corporation", "acme", model.OrganizationStatusActive, testTime, testTime))

		got, err := repo.List(context.Background(), model.OrganizationFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.Organization{
			UUID:      testUUID,
			Name:      "Acme Corporation",
			SName:     "acme",
			Status:    model.OrganizationStatusActive,
			CreatedAt: testTime,
			UpdatedAt: testTime,
		}, got[0])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all filters", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectOrganizations + " WHERE name ILIKE $1 AND sname ILIKE $2 AND status = $3 ORDER BY created_at DESC")).
			WithArgs("%ac\\_me%", "%ac%", "inactive").
			WillReturnRows(organizationRows())

		got, err := repo.List(context.Background(), model.OrganizationFilter{
			Name:   strPtr("ac_me"),
			SName:  strPtr("ac"),
			Status: strPtr("inactive"),
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectOrganizations)).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.List(context.Background(), model.OrganizationFilter{})
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestOrganizationRepository_GetByUUID(t *testing.T) {
	query := regexp.QuoteMeta(selectOrganizations + " WHERE uuid = $1")

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(query).
			WithArgs(testUUID).
			WillReturnRows(organizationRows().
				AddRow(testUUID, "Acme Corporation", "acme", model.OrganizationStatusActive, testTime, testTime))

		got, err := repo.GetByUUID(context.Background(), testUUID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "acme", got.SName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found returns nil", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(query).
			WithArgs(testUUID).
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetByUUID(context.Background(), testUUID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestOrganizationRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO organizations (uuid,name,sname,status) VALUES ($1,$2,$3,$4) RETURNING uuid, name, sname, status, created_at, updated_at")).
		WithArgs(pgxmock.AnyArg(), "Acme Corporation", "acme", model.OrganizationStatusActive).
		WillReturnRows(organizationRows().
			AddRow(testUUID, "Acme Corporation", "acme", model.OrganizationStatusActive, testTime, testTime))

	got, err := repo.Create(context.Background(), "Acme Corporation", "acme")
	require.NoError(t, err)
	assert.Equal(t, testUUID, got.UUID)
	assert.Equal(t, model.OrganizationStatusActive, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Update(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE organizations SET name = $1, sname = $2, updated_at = NOW() WHERE uuid = $3 RETURNING uuid, name, sname, status, created_at, updated_at")

	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(query).
			WithArgs("Acme Inc", "acme-inc", testUUID).
			WillReturnRows(organizationRows().
				AddRow(testUUID, "Acme Inc", "acme-inc", model.OrganizationStatusActive, testTime, testTime))

		got, err := repo.Update(context.Background(), testUUID, "Acme Inc", "acme-inc")
		require.NoError(t, err)
		assert.Equal(t, "acme-inc", got.SName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(query).
			WithArgs("Acme Inc", "acme-inc", testUUID).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Update(context.Background(), testUUID, "Acme Inc", "acme-inc")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.ErrorContains(t, err, "table:organizations")
	})
}

func TestOrganizationRepository_Delete(t *testing.T) {
	query := regexp.QuoteMeta("DELETE FROM organizations WHERE uuid = $1")

	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(query).
			WithArgs(testUUID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(context.Background(), testUUID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(query).
			WithArgs(testUUID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), testUUID), pgx.ErrNoRows)
	})
}
