package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"taskplane.app/api-server/core/db"
	"taskplane.app/api-server/internal/model"
)

const projectColumns = `id, name, description, organization_id, created_by, created_at, updated_at`

type projectStore struct {
	q db.Querier
}

func newProjectStore(q db.Querier) ProjectStore {
	return &projectStore{q: q}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row := s.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO projects (id, name, description, organization_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+projectColumns,
		project.ID, project.Name, project.Description, project.OrganizationID, project.CreatedBy,
	)
	created, err := scanProject(row)
	if err != nil {
		return mapWriteError(err)
	}
	*project = *created
	return nil
}

func (s *projectStore) Update(ctx context.Context, project *model.Project) error {
	row := s.q.QueryRow(ctx, `
		UPDATE projects
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+projectColumns,
		project.ID, project.Name, project.Description,
	)
	updated, err := scanProject(row)
	if err != nil {
		return mapWriteError(err)
	}
	*project = *updated
	return nil
}

func (s *projectStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *projectStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE organization_id = $1
		ORDER BY created_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

func (s *projectStore) ListForMember(ctx context.Context, orgID, userID int64) ([]model.Project, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+projectColumns+` FROM projects p
		WHERE p.organization_id = $1
		  AND (p.created_by = $2 OR EXISTS (
			SELECT 1 FROM tasks t
			JOIN task_assignees ta ON ta.task_id = t.id
			WHERE t.project_id = p.id AND ta.user_id = $2
		  ))
		ORDER BY p.created_at DESC`,
		orgID, userID,
	)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.OrganizationID,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]model.Project, error) {
	defer rows.Close()
	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.OrganizationID,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
