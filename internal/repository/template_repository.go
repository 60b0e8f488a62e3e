package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// ShiftTemplateRepository defines persistence access for shift templates.
type ShiftTemplateRepository interface {
	Create(ctx context.Context, tpl *domain.ShiftTemplate) error
	Update(ctx context.Context, tpl *domain.ShiftTemplate) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ShiftTemplate, error)
	List(ctx context.Context) ([]*domain.ShiftTemplate, error)
}

type shiftTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewShiftTemplateRepository returns a Postgres-backed implementation.
func NewShiftTemplateRepository(pool *pgxpool.Pool) ShiftTemplateRepository {
	return &shiftTemplateRepository{pool: pool}
}

func (r *shiftTemplateRepository) Create(ctx context.Context, tpl *domain.ShiftTemplate) error {
	const query = `
        INSERT INTO shift_templates (id, name, start_time, end_time, type, work_location)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		tpl.ID,
		tpl.Name,
		tpl.Start,
		tpl.End,
		tpl.Type,
		tpl.WorkLocation,
	).Scan(&tpl.CreatedAt, &tpl.UpdatedAt)
}

func (r *shiftTemplateRepository) Update(ctx context.Context, tpl *domain.ShiftTemplate) error {
	const query = `
        UPDATE shift_templates SET name=$1, start_time=$2, end_time=$3, type=$4, work_location=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		tpl.Name,
		tpl.Start,
		tpl.End,
		tpl.Type,
		tpl.WorkLocation,
		tpl.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftTemplateRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shift_templates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftTemplateRepository) GetByID(ctx context.Context, id string) (*domain.ShiftTemplate, error) {
	const query = `
        SELECT id, name, start_time, end_time, type, work_location, created_at, updated_at
        FROM shift_templates WHERE id=$1`

	var tpl domain.ShiftTemplate
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.Start,
		&tpl.End,
		&tpl.Type,
		&tpl.WorkLocation,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *shiftTemplateRepository) List(ctx context.Context) ([]*domain.ShiftTemplate, error) {
	const query = `
        SELECT id, name, start_time, end_time, type, work_location, created_at, updated_at
        FROM shift_templates ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.ShiftTemplate
	for rows.Next() {
		var tpl domain.ShiftTemplate
		if err := rows.Scan(
			&tpl.ID,
			&tpl.Name,
			&tpl.Start,
			&tpl.End,
			&tpl.Type,
			&tpl.WorkLocation,
			&tpl.CreatedAt,
			&tpl.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, &tpl)
	}
	return templates, rows.Err()
}
