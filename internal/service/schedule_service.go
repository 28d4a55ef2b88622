package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
)

const (
	rotationCacheKey = "rotations:feed"
	rotationCacheTTL = 30 * time.Second
)

// RotationCache is the caching surface the schedule service needs. Backed by
// Redis in production, by an in-memory map in tests.
type RotationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// ScheduleService covers employee and shift CRUD plus the rotation calendar.
type ScheduleService struct {
	employees  repository.EmployeeRepository
	shifts     repository.ShiftRepository
	rotations  repository.RotationRepository
	cache      RotationCache
	dispatcher events.Dispatcher
}

// ScheduleDependencies encapsulates requirements for the schedule service.
type ScheduleDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	ShiftRepo    repository.ShiftRepository
	RotationRepo repository.RotationRepository
	Cache        RotationCache
	Dispatcher   events.Dispatcher
}

// NewScheduleService builds the service.
func NewScheduleService(deps ScheduleDependencies) *ScheduleService {
	return &ScheduleService{
		employees:  deps.EmployeeRepo,
		shifts:     deps.ShiftRepo,
		rotations:  deps.RotationRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CreateEmployee stores a new employee.
func (s *ScheduleService) CreateEmployee(ctx context.Context, name string, positionPercent int) (*domain.Employee, error) {
	employee := &domain.Employee{Name: name, PositionPercent: positionPercent}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEmployeeCreated, events.EmployeeCreatedPayload{
		EmployeeID:      employee.ID,
		Name:            employee.Name,
		PositionPercent: employee.PositionPercent,
	})
	return employee, nil
}

// UpdateEmployee overwrites name and position percent for an existing employee.
func (s *ScheduleService) UpdateEmployee(ctx context.Context, id int64, name string, positionPercent int) error {
	return s.employees.Update(ctx, &domain.Employee{ID: id, Name: name, PositionPercent: positionPercent})
}

// GetEmployee loads one employee.
func (s *ScheduleService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// ListEmployees returns all employees.
func (s *ScheduleService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// CreateShift stores a new shift.
func (s *ScheduleService) CreateShift(ctx context.Context, shift *domain.Shift) error {
	if err := s.shifts.Create(ctx, shift); err != nil {
		return err
	}
	s.publish(ctx, events.EventShiftCreated, events.ShiftCreatedPayload{
		ShiftID: shift.ID,
		Name:    shift.Name,
	})
	return nil
}

// UpdateShift overwrites an existing shift.
func (s *ScheduleService) UpdateShift(ctx context.Context, shift *domain.Shift) error {
	return s.shifts.Update(ctx, shift)
}

// GetShift loads one shift.
func (s *ScheduleService) GetShift(ctx context.Context, id int64) (*domain.Shift, error) {
	return s.shifts.GetByID(ctx, id)
}

// ListShifts returns all shifts.
func (s *ScheduleService) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	return s.shifts.List(ctx)
}

// AssignRotation puts an employee on a shift for a date and invalidates the
// cached calendar feed.
func (s *ScheduleService) AssignRotation(ctx context.Context, date time.Time, employeeID, shiftID int64) (*domain.Rotation, error) {
	rotation := &domain.Rotation{Date: date, EmployeeID: employeeID, ShiftID: shiftID}
	if err := s.rotations.Create(ctx, rotation); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, rotationCacheKey)
	}
	s.publish(ctx, events.EventRotationAssigned, events.RotationAssignedPayload{
		RotationID: rotation.ID,
		EmployeeID: rotation.EmployeeID,
		ShiftID:    rotation.ShiftID,
		Date:       rotation.Date.Format(time.DateOnly),
	})
	return rotation, nil
}

// RotationEvents returns the joined calendar rows, served from cache when the
// cached copy is fresh. Cache failures fall through to the database.
func (s *ScheduleService) RotationEvents(ctx context.Context) ([]domain.RotationEvent, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, rotationCacheKey); ok {
			var cached []domain.RotationEvent
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	rows, err := s.rotations.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(rows); err == nil {
			s.cache.Set(ctx, rotationCacheKey, string(raw), rotationCacheTTL)
		}
	}
	return rows, nil
}

func (s *ScheduleService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
