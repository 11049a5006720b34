package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"taskplane.app/api-server/core/db"
	"taskplane.app/api-server/internal/model"
)

const userColumns = `id, email, name, password_hash, role, organization_id, created_at, updated_at`

type userStore struct {
	q db.Querier
}

func newUserStore(q db.Querier) UserStore {
	return &userStore{q: q}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.OrganizationID,
	)
	created, err := scanUser(row)
	if err != nil {
		return mapWriteError(err)
	}
	*user = *created
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, role = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role,
	)
	updated, err := scanUser(row)
	if err != nil {
		return mapWriteError(err)
	}
	*user = *updated
	return nil
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role != $1
		ORDER BY created_at DESC`,
		model.RolePlatformAdmin,
	)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (s *userStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE organization_id = $1 AND role != $2
		ORDER BY created_at DESC`,
		orgID, model.RolePlatformAdmin,
	)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (s *userStore) CountInOrganization(ctx context.Context, ids []int64, orgID int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE id = ANY($1) AND organization_id = $2`,
		ids, orgID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.OrganizationID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.OrganizationID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
