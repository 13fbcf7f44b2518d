package staff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с сотрудниками, их сменами
// и исключениями расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"color",
		"is_active",
		"max_concurrent_bookings",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Color,
		&s.IsActive,
		&s.MaxConcurrentBookings,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// ListActive получает всех активных сотрудников
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"color",
		"is_active",
		"max_concurrent_bookings",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffList := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Color,
			&s.IsActive,
			&s.MaxConcurrentBookings,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		staffList = append(staffList, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return staffList, nil
}

// GetShiftsByStaffIDs получает недельные смены нескольких сотрудников
func (r *Repository) GetShiftsByStaffIDs(ctx context.Context, staffIDs []int64) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
	).
		From("shifts").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		OrderBy("staff_id ASC, day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetShiftsByStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetShiftsByStaffIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		var s domain.Shift
		err := rows.Scan(
			&s.ID,
			&s.StaffID,
			&s.DayOfWeek,
			&s.StartTime,
			&s.EndTime,
			&s.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetShiftsByStaffIDs - scan row: %v", ErrScanRow, err)
		}
		shifts = append(shifts, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetShiftsByStaffIDs - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}

// GetOverridesByStaffIDsAndDate получает исключения расписания
// нескольких сотрудников на конкретную дату
func (r *Repository) GetOverridesByStaffIDsAndDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ShiftOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"override_date",
		"start_time",
		"end_time",
	).
		From("shift_overrides").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Eq{"override_date": date.Format(domain.DateFormat)}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesByStaffIDsAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesByStaffIDsAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.ShiftOverride, 0)
	for rows.Next() {
		var o domain.ShiftOverride
		err := rows.Scan(
			&o.ID,
			&o.StaffID,
			&o.Date,
			&o.StartTime,
			&o.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesByStaffIDsAndDate - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesByStaffIDsAndDate - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}
