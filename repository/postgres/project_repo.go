package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

const projectColumns = `id, user_id, name, description, status, priority, start_date, end_date, budget, tags, property_id, created_at, updated_at`

type projectRepository struct {
	pool  *pgxpool.Pool
	tasks repository.TaskRepository
}

// NewProjectRepository returns a Postgres-backed implementation of
// ProjectRepository. Project fetches populate their task list through the
// provided task repository.
func NewProjectRepository(pool *pgxpool.Pool, tasks repository.TaskRepository) repository.ProjectRepository {
	return &projectRepository{pool: pool, tasks: tasks}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		return nil, err
	}

	if r.tasks != nil {
		tasks, err := r.tasks.List(ctx, repository.TaskFilter{ProjectID: project.ID})
		if err != nil {
			return nil, err
		}
		project.Tasks = tasks
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	const query = `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR property_id = $3)
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.Status, filter.PropertyID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO projects (id, user_id, name, description, status, priority, start_date, end_date, budget, tags, property_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.StartDate,
		nullTime(project.EndDate),
		project.Budget,
		project.Tags,
		nullString(project.PropertyID),
	).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE projects
	SET name = $2,
		description = $3,
		status = $4,
		priority = $5,
		start_date = $6,
		end_date = $7,
		budget = $8,
		tags = $9,
		property_id = $10,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.StartDate,
		nullTime(project.EndDate),
		project.Budget,
		project.Tags,
		nullString(project.PropertyID),
	).Scan(&project.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		project    domain.Project
		endDate    *time.Time
		propertyID *string
	)

	if err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.Priority,
		&project.StartDate,
		&endDate,
		&project.Budget,
		&project.Tags,
		&propertyID,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	project.EndDate = endDate
	if propertyID != nil {
		project.PropertyID = *propertyID
	}
	return &project, nil
}
