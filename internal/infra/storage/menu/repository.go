package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с меню услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("service_menus").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.ServiceMenu
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.DurationMinutes,
		&m.Price,
		&m.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan menu: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}
