package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// RotationRepository encapsulates rotation persistence.
type RotationRepository interface {
	Create(ctx context.Context, rotation *domain.Rotation) error
	ListEvents(ctx context.Context) ([]domain.RotationEvent, error)
}

type rotationRepository struct {
	pool *pgxpool.Pool
}

// NewRotationRepository instantiates the repository.
func NewRotationRepository(pool *pgxpool.Pool) RotationRepository {
	return &rotationRepository{pool: pool}
}

func (r *rotationRepository) Create(ctx context.Context, rotation *domain.Rotation) error {
	const query = `
        INSERT INTO rotations (rotation_date, employee_id, shift_id)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		rotation.Date,
		rotation.EmployeeID,
		rotation.ShiftID,
	).Scan(&rotation.ID)
}

// ListEvents joins rotations with employee and shift names for the calendar feed.
func (r *rotationRepository) ListEvents(ctx context.Context) ([]domain.RotationEvent, error) {
	const query = `
        SELECT r.rotation_date, e.name AS employee_name, s.name AS shift_name
        FROM rotations r
        JOIN employees e ON r.employee_id = e.id
        JOIN shifts s ON r.shift_id = s.id
        ORDER BY r.rotation_date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.RotationEvent
	for rows.Next() {
		var event domain.RotationEvent
		if err := rows.Scan(&event.Date, &event.EmployeeName, &event.ShiftName); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
