package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие конфликт бронирования:
// 23P01 exclusion_violation (exclusion constraint на staff_id + период),
// 23505 unique_violation.
const (
	pqExclusionViolation = "23P01"
	pqUniqueViolation    = "23505"
)

var bookingColumns = []string{
	"id",
	"member_id",
	"staff_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"booking_type",
	"staff_name",
	"menu_id",
	"menu_name",
	"menu_price",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Таблица bookings несёт exclusion constraint на
// (staff_id, tstzrange(начало, конец)) для активных статусов:
// конкурентная вставка пересекающегося бронирования завершается
// ошибкой 23P01, которую мы транслируем в ErrSlotTaken. Это закрывает
// check-then-act гонку между проверкой пересечений и вставкой даже
// вне сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !domain.ValidStatus(booking.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, booking.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"member_id",
			"staff_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"booking_type",
			"staff_name",
			"menu_id",
			"menu_name",
			"menu_price",
			"notes",
		).
		Values(
			booking.MemberID,
			booking.StaffID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.Type,
			booking.StaffName,
			booking.MenuID,
			booking.MenuName,
			booking.MenuPrice,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConflictError(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByStaffWithFilter получает бронирования сотрудника с фильтрацией
// по периоду. По умолчанию отменённые бронирования исключаются, они
// не занимают слот.
//
// Внутри транзакции для выборки на конкретную дату добавляется
// FOR UPDATE: usecase создания бронирования блокирует день сотрудника
// на время проверки пересечений.
func (r *Repository) GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": filter.StaffID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(domain.StatusConfirmed)})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC, start_time ASC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByStaffIDsAndDate получает подтверждённые бронирования
// нескольких сотрудников на одну дату. Используется расчётом доступности.
func (r *Repository) GetActiveByStaffIDsAndDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		OrderBy("staff_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffIDsAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffIDsAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByMemberWithFilter получает бронирования участника с фильтрацией
// по периоду и статусу
func (r *Repository) GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"member_id": filter.MemberID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(domain.StatusConfirmed)})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMemberWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel переводит бронирование в терминальный статус отмены с причиной.
// Физического удаления нет, отмена это смена статуса.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason domain.CancellationReason) error {
	if status != domain.StatusCancelled && status != domain.StatusCancelledLate {
		return fmt.Errorf("%w: %q is not a cancellation status", ErrInvalidStatus, status)
	}
	if !domain.ValidCancellationReason(reason) {
		return fmt.Errorf("%w: unknown cancellation reason %q", ErrInvalidStatus, reason)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// isConflictError проверяет, является ли ошибка нарушением
// exclusion/unique constraint
func isConflictError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqExclusionViolation || pqErr.Code == pqUniqueViolation
	}
	return false
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var reason sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.MemberID,
		&booking.StaffID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Type,
		&booking.StaffName,
		&booking.MenuID,
		&booking.MenuName,
		&booking.MenuPrice,
		&booking.Notes,
		&reason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		r := domain.CancellationReason(reason.String)
		booking.CancellationReason = &r
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
