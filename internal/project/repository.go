// AngelaMos | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

const projectColumns = `
	id, number, name, description, start_date, due_date, type, stage,
	comment, planned_hours, actual_hours, is_template, template_id,
	responsible_id, organization_id, contact_id, created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, p *Project) (*Project, error) {
	saved := *p
	saved.ID = uuid.NewString()

	query := `
		INSERT INTO projects (
			id, number, name, description, start_date, due_date, type, stage,
			comment, planned_hours, actual_hours, is_template, template_id,
			responsible_id, organization_id, contact_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		saved.ID,
		saved.Number,
		saved.Name,
		saved.Description,
		saved.StartDate,
		saved.DueDate,
		saved.Type,
		saved.Stage,
		saved.Comment,
		saved.PlannedHours,
		saved.ActualHours,
		saved.IsTemplate,
		saved.TemplateID,
		saved.ResponsibleID,
		saved.OrganizationID,
		saved.ContactID,
		saved.CreatedAt,
	)
	if err := row.Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("create project: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}

	return &saved, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	var p Project
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, offset, limit int) ([]Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	return r.selectProjects(ctx, "list projects", query, limit, offset)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return total, nil
}

func (r *repository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM projects WHERE number = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, number); err != nil {
		return false, fmt.Errorf("check project number exists: %w", err)
	}
	return exists, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM projects WHERE name = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("check project name exists: %w", err)
	}
	return exists, nil
}

func (r *repository) Update(ctx context.Context, p *Project) (*Project, error) {
	if _, err := uuid.Parse(p.ID); err != nil {
		return nil, fmt.Errorf("update project: %w", core.ErrNotFound)
	}

	query := `
		UPDATE projects
		SET number = $2, name = $3, description = $4, start_date = $5,
		    due_date = $6, type = $7, stage = $8, comment = $9,
		    planned_hours = $10, actual_hours = $11, is_template = $12,
		    template_id = $13, responsible_id = $14, organization_id = $15,
		    contact_id = $16, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	updated := *p
	err := r.db.GetContext(ctx, &updated.UpdatedAt, query,
		p.ID,
		p.Number,
		p.Name,
		p.Description,
		p.StartDate,
		p.DueDate,
		p.Type,
		p.Stage,
		p.Comment,
		p.PlannedHours,
		p.ActualHours,
		p.IsTemplate,
		p.TemplateID,
		p.ResponsibleID,
		p.OrganizationID,
		p.ContactID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update project: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("update project: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) FindTemplates(ctx context.Context) ([]Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE is_template
		ORDER BY name`

	return r.selectProjects(ctx, "list templates", query)
}

func (r *repository) FindByTemplateID(ctx context.Context, templateID string) ([]Project, error) {
	if _, err := uuid.Parse(templateID); err != nil {
		return []Project{}, nil
	}

	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE template_id = $1
		ORDER BY created_at DESC, id`

	return r.selectProjects(ctx, "list projects by template", query, templateID)
}

func (r *repository) FindByOrganization(ctx context.Context, organizationID string) ([]Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = $1
		ORDER BY created_at DESC, id`

	return r.selectProjects(ctx, "list projects by organization", query, organizationID)
}

func (r *repository) FindByResponsible(ctx context.Context, responsibleID string) ([]Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE responsible_id = $1
		ORDER BY created_at DESC, id`

	return r.selectProjects(ctx, "list projects by responsible", query, responsibleID)
}

func (r *repository) selectProjects(
	ctx context.Context,
	op, query string,
	args ...any,
) ([]Project, error) {
	projects := []Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
