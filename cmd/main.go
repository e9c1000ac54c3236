package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/create_booking"
	createOverrideHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/create_override"
	deleteKitchenHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/delete_kitchen"
	deleteOverrideHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/delete_override"
	getBookingHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_booking"
	getChefBookingsHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_chef_bookings"
	getDailyPolicyHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_daily_policy"
	getKitchenBookingsHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_kitchen_bookings"
	getKitchenConfigHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_kitchen_config"
	getKitchenScheduleHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_kitchen_schedule"
	getOpenSlotsHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/get_open_slots"
	updateKitchenConfigHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/update_kitchen_config"
	updateKitchenScheduleHandler "github.com/kitchenly/KB-BookingService/internal/api/handlers/update_kitchen_schedule"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/app"
	"github.com/kitchenly/KB-BookingService/internal/config"
	bookingRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/booking"
	kitchenRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/kitchen"
	scheduleRepo "github.com/kitchenly/KB-BookingService/internal/infra/storage/schedule"
	marketplaceClient "github.com/kitchenly/KB-BookingService/internal/integrations/marketplace"
	notifyClient "github.com/kitchenly/KB-BookingService/internal/integrations/notify"
	bookingsService "github.com/kitchenly/KB-BookingService/internal/service/bookings"
	kitchensService "github.com/kitchenly/KB-BookingService/internal/service/kitchens"
	scheduleService "github.com/kitchenly/KB-BookingService/internal/service/schedule"
	createBookingUC "github.com/kitchenly/KB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/kitchenly/KB-BookingService/internal/usecase/get_available_slots"
	"github.com/kitchenly/KB-BookingService/pkg/dbmetrics"
	"github.com/kitchenly/KB-BookingService/pkg/logger"
	"github.com/kitchenly/KB-BookingService/pkg/metrics"
	"github.com/kitchenly/KB-BookingService/pkg/simpletxmanager"
	"github.com/kitchenly/KB-BookingService/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	// .env не обязателен, из него подтягиваются только секреты БД
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting KB-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции (если включено)
	if cfg.Migrations.Auto {
		migrator, err := app.NewMigrator(db, cfg.Migrations.Dir)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrator.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to read migrations version: %v", err)
		}
		log.Info("Migrations applied, schema version=%d", version)
	}

	// Инициализируем интеграционных клиентов
	marketplace := marketplaceClient.NewClient(
		cfg.Marketplace.URL,
		time.Duration(cfg.Marketplace.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.Notify.URL,
		time.Duration(cfg.Notify.Timeout)*time.Second,
		cfg.Notify.RatePerSecond,
		cfg.Notify.Burst,
		log,
	)
	log.Info("Integration clients initialized (Marketplace=%s timeout=%ds, Notify=%s timeout=%ds)",
		cfg.Marketplace.URL, cfg.Marketplace.Timeout, cfg.Notify.URL, cfg.Notify.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		kitchenRepository  *kitchenRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		kitchenRepository = kitchenRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		kitchenRepository = kitchenRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		kitchenRepository,
		marketplace,
		notifier,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		kitchenRepository,
		log,
	)
	kitchenSvc := kitchensService.NewService(
		kitchenRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		kitchenRepository,
		marketplace,
		notifier,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		kitchenRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getChefBookings := getChefBookingsHandler.NewHandler(bookingSvc, log)
	getKitchenBookings := getKitchenBookingsHandler.NewHandler(bookingSvc, log)
	getKitchenConfig := getKitchenConfigHandler.NewHandler(kitchenSvc, log)
	updateKitchenConfig := updateKitchenConfigHandler.NewHandler(kitchenSvc, log)
	deleteKitchen := deleteKitchenHandler.NewHandler(kitchenSvc, log)
	getKitchenSchedule := getKitchenScheduleHandler.NewHandler(scheduleSvc, log)
	updateKitchenSchedule := updateKitchenScheduleHandler.NewHandler(scheduleSvc, log)
	createOverride := createOverrideHandler.NewHandler(scheduleSvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(scheduleSvc, log)
	getDailyPolicy := getDailyPolicyHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Витрина свободных слотов кухни на дату
	api.HandleFunc("/kitchens/{kitchenId}/open-slots",
		getOpenSlots.Handle).Methods(http.MethodGet)

	// Действующий режим работы кухни на дату
	api.HandleFunc("/kitchens/{kitchenId}/daily-policy",
		getDailyPolicy.Handle).Methods(http.MethodGet)

	// Конфигурация кухни (тарифы и лимиты бронирования)
	api.HandleFunc("/kitchens/{kitchenId}/config",
		getKitchenConfig.Handle).Methods(http.MethodGet)

	// Недельное расписание кухни
	api.HandleFunc("/kitchens/{kitchenId}/schedule",
		getKitchenSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Подтверждение бронирования менеджером
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// История бронирований шефа
	protected.HandleFunc("/chefs/{chefId}/bookings", getChefBookings.Handle).Methods(http.MethodGet)

	// --- Управление кухней (для менеджеров локации) ---
	// Список бронирований кухни
	protected.HandleFunc("/kitchens/{kitchenId}/bookings", getKitchenBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации кухни
	protected.HandleFunc("/kitchens/{kitchenId}/config", updateKitchenConfig.Handle).Methods(http.MethodPut)

	// Обновление недельного расписания
	protected.HandleFunc("/kitchens/{kitchenId}/schedule", updateKitchenSchedule.Handle).Methods(http.MethodPut)

	// Точечные изменения расписания на конкретные даты
	protected.HandleFunc("/kitchens/{kitchenId}/overrides", createOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/kitchens/{kitchenId}/overrides/{overrideId}", deleteOverride.Handle).Methods(http.MethodDelete)

	// Удаление кухни (только без бронирований)
	protected.HandleFunc("/kitchens/{kitchenId}", deleteKitchen.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
