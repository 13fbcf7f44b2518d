package member

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

// Repository репозиторий для работы с участниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория участников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает участника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"plan",
		"contracted_sessions",
		"join_date",
		"manual_discount_rate",
		"main_trainer",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("members").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Member
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.Plan,
		&m.ContractedSessions,
		&m.JoinDate,
		&m.ManualDiscountRate,
		&m.MainTrainer,
		&m.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan member: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}
