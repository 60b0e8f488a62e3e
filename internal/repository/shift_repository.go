package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// ShiftFilter narrows shift listings.
type ShiftFilter struct {
	DateFrom *string
	DateTo   *string
	Status   *domain.ShiftStatus
	Limit    int
}

// ShiftRepository defines persistence access for shifts.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	Update(ctx context.Context, shift *domain.Shift) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]*domain.Shift, error)
	CountByType(ctx context.Context) (map[string]int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository returns a Postgres-backed implementation.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (id, date, start_time, end_time, type, work_location, status, assignee_email)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		shift.ID,
		shift.Date,
		shift.Start,
		shift.End,
		shift.Type,
		shift.WorkLocation,
		shift.Status,
		shift.AssigneeEmail,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
}

func (r *shiftRepository) Update(ctx context.Context, shift *domain.Shift) error {
	const query = `
        UPDATE shifts SET date=$1, start_time=$2, end_time=$3, type=$4, work_location=$5, status=$6, assignee_email=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		shift.Date,
		shift.Start,
		shift.End,
		shift.Type,
		shift.WorkLocation,
		shift.Status,
		shift.AssigneeEmail,
		shift.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shifts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	const query = `
        SELECT id, date, start_time, end_time, type, work_location, status, assignee_email, created_at, updated_at
        FROM shifts WHERE id=$1`

	var shift domain.Shift
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&shift.ID,
		&shift.Date,
		&shift.Start,
		&shift.End,
		&shift.Type,
		&shift.WorkLocation,
		&shift.Status,
		&shift.AssigneeEmail,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) List(ctx context.Context, filter ShiftFilter) ([]*domain.Shift, error) {
	query := `
        SELECT id, date, start_time, end_time, type, work_location, status, assignee_email, created_at, updated_at
        FROM shifts WHERE 1=1`
	args := []any{}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY date, start_time`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*domain.Shift
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(
			&shift.ID,
			&shift.Date,
			&shift.Start,
			&shift.End,
			&shift.Type,
			&shift.WorkLocation,
			&shift.Status,
			&shift.AssigneeEmail,
			&shift.CreatedAt,
			&shift.UpdatedAt,
		); err != nil {
			return nil, err
		}
		shifts = append(shifts, &shift)
	}
	return shifts, rows.Err()
}

func (r *shiftRepository) CountByType(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT type, COUNT(*) FROM shifts GROUP BY type`)
}

func (r *shiftRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM shifts GROUP BY status`)
}

func (r *shiftRepository) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
