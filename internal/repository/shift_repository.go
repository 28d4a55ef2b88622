package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// ShiftRepository encapsulates shift persistence.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	Update(ctx context.Context, shift *domain.Shift) error
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	List(ctx context.Context) ([]domain.Shift, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository instantiates the repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (name, start_time, end_time, length)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		shift.Name,
		shift.StartTime,
		shift.EndTime,
		shift.Length,
	).Scan(&shift.ID)
}

func (r *shiftRepository) Update(ctx context.Context, shift *domain.Shift) error {
	const query = `
        UPDATE shifts SET name=$1, start_time=$2, end_time=$3, length=$4
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		shift.Name,
		shift.StartTime,
		shift.EndTime,
		shift.Length,
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

func (r *shiftRepository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	const query = `
        SELECT id, name, start_time, end_time, length
        FROM shifts WHERE id=$1`

	var shift domain.Shift
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&shift.ID,
		&shift.Name,
		&shift.StartTime,
		&shift.EndTime,
		&shift.Length,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) List(ctx context.Context) ([]domain.Shift, error) {
	const query = `
        SELECT id, name, start_time, end_time, length
        FROM shifts ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime, &shift.Length); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}
