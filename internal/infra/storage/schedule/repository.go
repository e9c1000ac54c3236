package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/dbmetrics"
	"github.com/kitchenly/KB-BookingService/pkg/psqlbuilder"
)

var weeklyColumns = []string{
	"id",
	"kitchen_id",
	"day_of_week",
	"is_available",
	"start_time",
	"end_time",
	"max_slots_per_chef",
	"created_at",
	"updated_at",
}

var overrideColumns = []string{
	"id",
	"kitchen_id",
	"override_date",
	"is_available",
	"start_time",
	"end_time",
	"max_slots_per_chef",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписаний кухонь: недельная сетка и override на даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyForDay получает запись недельного расписания кухни на день недели.
// Возвращает nil без ошибки, если расписание на этот день не задано.
func (r *Repository) GetWeeklyForDay(ctx context.Context, kitchenID int64, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyColumns...).
		From("weekly_availability").
		Where(squirrel.Eq{"kitchen_id": kitchenID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForDay - build select query: %v", ErrBuildQuery, err)
	}

	weekly, err := r.scanWeekly(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForDay - scan row: %v", ErrScanRow, err)
	}

	return weekly, nil
}

// GetWeeklyForKitchen получает полное недельное расписание кухни,
// упорядоченное по дню недели
func (r *Repository) GetWeeklyForKitchen(ctx context.Context, kitchenID int64) ([]*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyColumns...).
		From("weekly_availability").
		Where(squirrel.Eq{"kitchen_id": kitchenID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForKitchen - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForKitchen - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weeklies := make([]*domain.WeeklyAvailability, 0, 7)
	for rows.Next() {
		weekly, err := r.scanWeekly(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyForKitchen - scan row: %v", ErrScanRow, err)
		}
		weeklies = append(weeklies, weekly)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForKitchen - rows error: %v", ErrScanRow, err)
	}

	return weeklies, nil
}

// UpsertWeekly создает или обновляет запись недельного расписания на день недели
func (r *Repository) UpsertWeekly(ctx context.Context, weekly *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_availability").
		Columns("kitchen_id", "day_of_week", "is_available", "start_time", "end_time", "max_slots_per_chef").
		Values(weekly.KitchenID, weekly.DayOfWeek, weekly.IsAvailable, weekly.StartTime, weekly.EndTime, weekly.MaxSlotsPerChef).
		Suffix(`ON CONFLICT (kitchen_id, day_of_week) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			max_slots_per_chef = EXCLUDED.max_slots_per_chef,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&weekly.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - execute upsert: %v", ErrExecQuery, err)
	}

	weekly.CreatedAt = createdAt.Time
	weekly.UpdatedAt = updatedAt.Time

	return weekly, nil
}

// GetOverridesForDate получает все override-записи кухни на дату
// в порядке создания
func (r *Repository) GetOverridesForDate(ctx context.Context, kitchenID int64, date time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"kitchen_id": kitchenID, "override_date": date}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		override, err := r.scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesForDate - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesForDate - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// CreateOverride создает override-запись на дату
func (r *Repository) CreateOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("kitchen_id", "override_date", "is_available", "start_time", "end_time", "max_slots_per_chef").
		Values(override.KitchenID, override.Date, override.IsAvailable, override.StartTime, override.EndTime, override.MaxSlotsPerChef).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

// DeleteOverride удаляет override-запись кухни по ID
func (r *Repository) DeleteOverride(ctx context.Context, kitchenID, overrideID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"id": overrideID, "kitchen_id": kitchenID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanWeekly(row rowScanner) (*domain.WeeklyAvailability, error) {
	var weekly domain.WeeklyAvailability
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&weekly.ID,
		&weekly.KitchenID,
		&weekly.DayOfWeek,
		&weekly.IsAvailable,
		&weekly.StartTime,
		&weekly.EndTime,
		&weekly.MaxSlotsPerChef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	weekly.CreatedAt = createdAt.Time
	weekly.UpdatedAt = updatedAt.Time

	return &weekly, nil
}

func (r *Repository) scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var override domain.DateOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.KitchenID,
		&override.Date,
		&override.IsAvailable,
		&override.StartTime,
		&override.EndTime,
		&override.MaxSlotsPerChef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
