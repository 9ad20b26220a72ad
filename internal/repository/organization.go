package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/organizations/internal/model"
)

const organizationsTable = "organizations"

var organizationColumns = []string{"uuid", "name", "sname", "status", "created_at", "updated_at"}

// errOrganizationNotFound carries the "table:" marker sqlerr uses to name
// the missing entity in its 404 message.
var errOrganizationNotFound = fmt.Errorf("table:%s: %w", organizationsTable, pgx.ErrNoRows)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DBTX is the subset of *pgxpool.Pool the repositories use.
// pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// OrganizationRepository stores organizations in PostgreSQL.
type OrganizationRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

func NewOrganizationRepository(db DBTX) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns organizations matching filter, newest first.
// Name and SName match case-insensitively as substrings; Status matches exactly.
func (r *OrganizationRepository) List(ctx context.Context, filter model.OrganizationFilter) ([]model.Organization, error) {
	query := r.sb.Select(organizationColumns...).
		From(organizationsTable).
		OrderBy("created_at DESC")

	if filter.Name != nil {
		query = query.Where(squirrel.ILike{"name": containsPattern(*filter.Name)})
	}
	if filter.SName != nil {
		query = query.Where(squirrel.ILike{"sname": containsPattern(*filter.SName)})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"status": *filter.Status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list organizations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	defer rows.Close()

	organizations := make([]model.Organization, 0)
	for rows.Next() {
		organization, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning organization: %w", err)
		}
		organizations = append(organizations, *organization)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	return organizations, nil
}

// GetByUUID returns the organization, or nil when none exists.
func (r *OrganizationRepository) GetByUUID(ctx context.Context, id string) (*model.Organization, error) {
	sql, args, err := r.sb.Select(organizationColumns...).
		From(organizationsTable).
		Where(squirrel.Eq{"uuid": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get organization query: %w", err)
	}

	organization, err := scanOrganization(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting organization %s: %w", id, err)
	}

	return organization, nil
}

// Create stores a new active organization and returns it.
func (r *OrganizationRepository) Create(ctx context.Context, name, sname string) (*model.Organization, error) {
	sql, args, err := r.sb.Insert(organizationsTable).
		Columns("uuid", "name", "sname", "status").
		Values(uuid.New().String(), name, sname, model.OrganizationStatusActive).
		Suffix("RETURNING " + strings.Join(organizationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building create organization query: %w", err)
	}

	organization, err := scanOrganization(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	return organization, nil
}

// Update replaces name and sname. It returns a pgx.ErrNoRows-wrapping error
// when the organization does not exist.
func (r *OrganizationRepository) Update(ctx context.Context, id, name, sname string) (*model.Organization, error) {
	sql, args, err := r.sb.Update(organizationsTable).
		Set("name", name).
		Set("sname", sname).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"uuid": id}).
		Suffix("RETURNING " + strings.Join(organizationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update organization query: %w", err)
	}

	organization, err := scanOrganization(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating organization %s: %w", id, err)
	}

	return organization, nil
}

// Delete removes the organization. It returns a pgx.ErrNoRows-wrapping
// error when nothing was deleted.
func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete(organizationsTable).
		Where(squirrel.Eq{"uuid": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete organization query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("deleting organization %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errOrganizationNotFound
	}

	return nil
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var o model.Organization
	if err := row.Scan(&o.UUID, &o.Name, &o.SName, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
