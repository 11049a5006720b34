package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"taskplane.app/api-server/core/db"
	"taskplane.app/api-server/internal/model"
)

const organizationColumns = `id, name, slug, created_at, updated_at`

type organizationStore struct {
	q db.Querier
}

func newOrganizationStore(q db.Querier) OrganizationStore {
	return &organizationStore{q: q}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
	return scanOrganization(row)
}

func (s *organizationStore) GetByNameOrSlug(ctx context.Context, name, slug string) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+organizationColumns+` FROM organizations
		WHERE name = $1 OR slug = $2
		LIMIT 1`,
		name, slug,
	)
	return scanOrganization(row)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO organizations (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING `+organizationColumns,
		org.ID, org.Name, org.Slug,
	)
	created, err := scanOrganization(row)
	if err != nil {
		return mapWriteError(err)
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		UPDATE organizations
		SET name = $2, slug = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+organizationColumns,
		org.ID, org.Name, org.Slug,
	)
	updated, err := scanOrganization(row)
	if err != nil {
		return mapWriteError(err)
	}
	*org = *updated
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizationStore) List(ctx context.Context) ([]model.Organization, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+organizationColumns+` FROM organizations
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []model.Organization{}
	for rows.Next() {
		var o model.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var o model.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
