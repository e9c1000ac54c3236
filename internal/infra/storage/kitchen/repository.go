package kitchen

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/dbmetrics"
	"github.com/kitchenly/KB-BookingService/pkg/psqlbuilder"
)

var kitchenColumns = []string{
	"id",
	"location_id",
	"name",
	"hourly_rate_cents",
	"currency",
	"min_booking_hours",
	"slot_capacity",
	"created_at",
	"updated_at",
}

var locationColumns = []string{
	"id",
	"name",
	"timezone",
	"min_booking_window_hours",
	"default_daily_booking_limit",
	"cancellation_notice_hours",
	"cancellation_policy_message",
	"contact_email",
	"manager_ids",
	"created_at",
	"updated_at",
}

// Repository репозиторий кухонь и их локаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кухонь
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает кухню по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Kitchen, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(kitchenColumns...).
		From("kitchens").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	kitchen, err := r.scanKitchen(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrKitchenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan kitchen: %v", ErrScanRow, err)
	}

	return kitchen, nil
}

// GetLocationByID получает локацию по ID
func (r *Repository) GetLocationByID(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLocationByID - build select query: %v", ErrBuildQuery, err)
	}

	location, err := r.scanLocation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocationByID - scan location: %v", ErrScanRow, err)
	}

	return location, nil
}

// UpdatePricing обновляет ценовые настройки кухни.
// nil-поля не трогают текущие значения.
func (r *Repository) UpdatePricing(ctx context.Context, kitchenID int64, hourlyRateCents *int64, minBookingHours, slotCapacity *int) (*domain.Kitchen, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("kitchens").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": kitchenID})

	if hourlyRateCents != nil {
		updateBuilder = updateBuilder.Set("hourly_rate_cents", *hourlyRateCents)
	}
	if minBookingHours != nil {
		updateBuilder = updateBuilder.Set("min_booking_hours", *minBookingHours)
	}
	if slotCapacity != nil {
		updateBuilder = updateBuilder.Set("slot_capacity", *slotCapacity)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + joinColumns(kitchenColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricing - build update query: %v", ErrBuildQuery, err)
	}

	kitchen, err := r.scanKitchen(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrKitchenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricing - scan kitchen: %v", ErrScanRow, err)
	}

	return kitchen, nil
}

// Delete удаляет кухню вместе с её расписанием.
// Вызывающий код обязан заранее убедиться, что у кухни нет бронирований.
func (r *Repository) Delete(ctx context.Context, kitchenID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"weekly_availability", "date_overrides"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"kitchen_id": kitchenID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Delete - build delete query for %s: %v", ErrBuildQuery, table, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Delete - execute delete for %s: %v", ErrExecQuery, table, err)
		}
	}

	query, args, err := psqlbuilder.Delete("kitchens").
		Where(squirrel.Eq{"id": kitchenID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrKitchenNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanKitchen(row rowScanner) (*domain.Kitchen, error) {
	var kitchen domain.Kitchen
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&kitchen.ID,
		&kitchen.LocationID,
		&kitchen.Name,
		&kitchen.HourlyRateCents,
		&kitchen.Currency,
		&kitchen.MinBookingHours,
		&kitchen.SlotCapacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	kitchen.CreatedAt = createdAt.Time
	kitchen.UpdatedAt = updatedAt.Time

	return &kitchen, nil
}

func (r *Repository) scanLocation(row rowScanner) (*domain.Location, error) {
	var location domain.Location
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&location.ID,
		&location.Name,
		&location.Timezone,
		&location.MinBookingWindowHours,
		&location.DefaultDailyBookingLimit,
		&location.CancellationNoticeHours,
		&location.CancellationPolicyMessage,
		&location.ContactEmail,
		pq.Array(&location.ManagerIDs),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	location.CreatedAt = createdAt.Time
	location.UpdatedAt = updatedAt.Time

	return &location, nil
}

func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
