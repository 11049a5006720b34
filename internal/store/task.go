package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"taskplane.app/api-server/core/db"
	"taskplane.app/api-server/internal/model"
)

const taskColumns = `id, title, description, status, priority, due_date, project_id, organization_id, created_by, created_at, updated_at`

type taskStore struct {
	q db.Querier
}

func newTaskStore(q db.Querier) TaskStore {
	return &taskStore{q: q}
}

func (s *taskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	row := s.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadAssignees(ctx, []*model.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskStore) Create(ctx context.Context, task *model.Task, assigneeIDs []int64) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, due_date, project_id, organization_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+taskColumns,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.ProjectID, task.OrganizationID, task.CreatedBy,
	)
	created, err := scanTask(row)
	if err != nil {
		return mapWriteError(err)
	}
	*task = *created

	for _, userID := range assigneeIDs {
		if _, err := s.q.Exec(ctx, `
			INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2)`,
			task.ID, userID,
		); err != nil {
			return mapWriteError(err)
		}
	}

	return s.loadAssignees(ctx, []*model.Task{task})
}

func (s *taskStore) Update(ctx context.Context, task *model.Task) error {
	row := s.q.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		task.ID, task.Title, task.Description, task.Status, task.Priority, task.DueDate,
	)
	assignees := task.Assignees
	updated, err := scanTask(row)
	if err != nil {
		return mapWriteError(err)
	}
	*task = *updated
	task.Assignees = assignees
	return nil
}

func (s *taskStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *taskStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Task, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE organization_id = $1
		ORDER BY created_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	return s.collectTasks(ctx, rows)
}

func (s *taskStore) ListByAssignee(ctx context.Context, orgID, userID int64) ([]model.Task, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks t
		WHERE t.organization_id = $1
		  AND EXISTS (
			SELECT 1 FROM task_assignees ta
			WHERE ta.task_id = t.id AND ta.user_id = $2
		  )
		ORDER BY t.created_at DESC`,
		orgID, userID,
	)
	if err != nil {
		return nil, err
	}
	return s.collectTasks(ctx, rows)
}

func (s *taskStore) ReplaceAssignees(ctx context.Context, taskID int64, assigneeIDs []int64) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	for _, userID := range assigneeIDs {
		if _, err := s.q.Exec(ctx, `
			INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2)`,
			taskID, userID,
		); err != nil {
			return mapWriteError(err)
		}
	}
	return nil
}

func (s *taskStore) AddAssignee(ctx context.Context, taskID, userID int64) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2)`,
		taskID, userID,
	)
	return mapWriteError(err)
}

func (s *taskStore) RemoveAssignee(ctx context.Context, taskID, userID int64) error {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM task_assignees WHERE task_id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *taskStore) HasProjectAssignee(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tasks t
			JOIN task_assignees ta ON ta.task_id = t.id
			WHERE t.project_id = $1 AND ta.user_id = $2
		)`,
		projectID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *taskStore) collectTasks(ctx context.Context, rows pgx.Rows) ([]model.Task, error) {
	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	refs := make([]*model.Task, len(tasks))
	for i := range tasks {
		refs[i] = &tasks[i]
	}
	if err := s.loadAssignees(ctx, refs); err != nil {
		return nil, err
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.ProjectID, &t.OrganizationID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func scanTasks(rows pgx.Rows) ([]model.Task, error) {
	defer rows.Close()
	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
			&t.ProjectID, &t.OrganizationID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// loadAssignees attaches the assignee projection to each task in one query.
func (s *taskStore) loadAssignees(ctx context.Context, tasks []*model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int64, len(tasks))
	byID := make(map[int64]*model.Task, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		byID[t.ID] = t
		t.Assignees = []model.Assignee{}
	}

	rows, err := s.q.Query(ctx, `
		SELECT ta.task_id, u.id, u.email, u.name
		FROM task_assignees ta
		JOIN users u ON u.id = ta.user_id
		WHERE ta.task_id = ANY($1)
		ORDER BY u.created_at`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int64
		var a model.Assignee
		if err := rows.Scan(&taskID, &a.ID, &a.Email, &a.Name); err != nil {
			return err
		}
		if t, ok := byID[taskID]; ok {
			t.Assignees = append(t.Assignees, a)
		}
	}
	return rows.Err()
}
