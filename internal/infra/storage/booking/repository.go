package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/pkg/dbmetrics"
	"github.com/kitchenly/KB-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"reference",
	"kitchen_id",
	"chef_id",
	"external_name",
	"external_email",
	"external_phone",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"hourly_rate_cents",
	"total_price_cents",
	"service_fee_cents",
	"currency",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями кухонь
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (см. dbmetrics.WithTx),
// использует её - так создание участвует в сериализуемой транзакции
// admission-пайплайна вместе с проверкой конфликтов.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"kitchen_id",
			"chef_id",
			"external_name",
			"external_email",
			"external_phone",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"hourly_rate_cents",
			"total_price_cents",
			"service_fee_cents",
			"currency",
			"notes",
		).
		Values(
			booking.Reference,
			booking.KitchenID,
			booking.ChefID,
			booking.ExternalName,
			booking.ExternalEmail,
			booking.ExternalPhone,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.HourlyRateCents,
			booking.TotalPriceCents,
			booking.ServiceFeeCents,
			booking.Currency,
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
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// CreateStorageAddon создает add-on хранения, привязанный к бронированию
func (r *Repository) CreateStorageAddon(ctx context.Context, addon *domain.StorageBooking) (*domain.StorageBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("storage_bookings").
		Columns("booking_id", "storage_type", "start_date", "end_date", "price_cents").
		Values(addon.BookingID, addon.StorageType, addon.StartDate, addon.EndDate, addon.PriceCents).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateStorageAddon - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&addon.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateStorageAddon - execute insert: %v", ErrExecQuery, err)
	}
	addon.CreatedAt = createdAt.Time

	return addon, nil
}

// CreateEquipmentAddon создает add-on аренды оборудования, привязанный к бронированию
func (r *Repository) CreateEquipmentAddon(ctx context.Context, addon *domain.EquipmentBooking) (*domain.EquipmentBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment_bookings").
		Columns("booking_id", "equipment_name", "start_date", "end_date", "price_cents").
		Values(addon.BookingID, addon.EquipmentName, addon.StartDate, addon.EndDate, addon.PriceCents).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateEquipmentAddon - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&addon.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateEquipmentAddon - execute insert: %v", ErrExecQuery, err)
	}
	addon.CreatedAt = createdAt.Time

	return addon, nil
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

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByChefID получает список бронирований шефа
// Опционально фильтрует по статусу
func (r *Repository) GetByChefID(ctx context.Context, chefID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"chef_id": chefID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByChefID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByChefID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByKitchenWithFilter получает бронирования кухни с гибкой фильтрацией
// по шефу, периоду, статусу и включению отменённых.
//
// Внутри транзакции при запросе на конкретную дату добавляет FOR UPDATE:
// admission-пайплайн блокирует множество бронирований (кухня, дата) на время
// проверки конфликтов и записи - два параллельных создания на пересекающиеся
// интервалы не могут оба пройти проверку.
func (r *Repository) GetByKitchenWithFilter(ctx context.Context, filter domain.KitchenBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"kitchen_id": filter.KitchenID})

	if filter.ChefID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"chef_id": *filter.ChefID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKitchenWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKitchenWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetAddons получает add-on записи хранения и оборудования бронирования
func (r *Repository) GetAddons(ctx context.Context, bookingID int64) ([]*domain.StorageBooking, []*domain.EquipmentBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	storageQuery, storageArgs, err := psqlbuilder.Select("id", "booking_id", "storage_type", "start_date", "end_date", "price_cents", "created_at").
		From("storage_bookings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetAddons - build storage query: %v", ErrBuildQuery, err)
	}

	storageRows, err := executor.QueryContext(ctx, storageQuery, storageArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetAddons - execute storage query: %v", ErrExecQuery, err)
	}
	defer storageRows.Close()

	storageAddons := make([]*domain.StorageBooking, 0)
	for storageRows.Next() {
		var addon domain.StorageBooking
		var createdAt sql.NullTime
		err := storageRows.Scan(&addon.ID, &addon.BookingID, &addon.StorageType, &addon.StartDate, &addon.EndDate, &addon.PriceCents, &createdAt)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: GetAddons - scan storage row: %v", ErrScanRow, err)
		}
		addon.CreatedAt = createdAt.Time
		storageAddons = append(storageAddons, &addon)
	}
	if err := storageRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: GetAddons - storage rows error: %v", ErrScanRow, err)
	}

	equipmentQuery, equipmentArgs, err := psqlbuilder.Select("id", "booking_id", "equipment_name", "start_date", "end_date", "price_cents", "created_at").
		From("equipment_bookings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetAddons - build equipment query: %v", ErrBuildQuery, err)
	}

	equipmentRows, err := executor.QueryContext(ctx, equipmentQuery, equipmentArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetAddons - execute equipment query: %v", ErrExecQuery, err)
	}
	defer equipmentRows.Close()

	equipmentAddons := make([]*domain.EquipmentBooking, 0)
	for equipmentRows.Next() {
		var addon domain.EquipmentBooking
		var createdAt sql.NullTime
		err := equipmentRows.Scan(&addon.ID, &addon.BookingID, &addon.EquipmentName, &addon.StartDate, &addon.EndDate, &addon.PriceCents, &createdAt)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: GetAddons - scan equipment row: %v", ErrScanRow, err)
		}
		addon.CreatedAt = createdAt.Time
		equipmentAddons = append(equipmentAddons, &addon)
	}
	if err := equipmentRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: GetAddons - equipment rows error: %v", ErrScanRow, err)
	}

	return storageAddons, equipmentAddons, nil
}

// CountByKitchenID подсчитывает количество бронирований кухни (любых статусов).
// Используется для блокировки удаления кухни с историей бронирований.
func (r *Repository) CountByKitchenID(ctx context.Context, kitchenID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"kitchen_id": kitchenID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByKitchenID - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByKitchenID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
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

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.KitchenID,
		&booking.ChefID,
		&booking.ExternalName,
		&booking.ExternalEmail,
		&booking.ExternalPhone,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.HourlyRateCents,
		&booking.TotalPriceCents,
		&booking.ServiceFeeCents,
		&booking.Currency,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
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
