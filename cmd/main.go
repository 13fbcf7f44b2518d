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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_booking"
	getMemberBillHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_member_bill"
	getMemberBookingsHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_member_bookings"
	getStaffBookingsHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_staff_bookings"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	"github.com/m04kA/GMS-BookingService/internal/config"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	memberRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/member"
	menuRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/menu"
	staffRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/staff"
	bookingsService "github.com/m04kA/GMS-BookingService/internal/service/bookings"
	calculateBillUC "github.com/m04kA/GMS-BookingService/internal/usecase/calculate_bill"
	cancelBookingUC "github.com/m04kA/GMS-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/GMS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/GMS-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/logger"
	"github.com/m04kA/GMS-BookingService/pkg/metrics"
	"github.com/m04kA/GMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/GMS-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting GMS-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		staffRepository   *staffRepo.Repository
		memberRepository  *memberRepo.Repository
		menuRepository    *menuRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		memberRepository = memberRepo.NewRepository(wrappedDB)
		menuRepository = menuRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		memberRepository = memberRepo.NewRepository(db)
		menuRepository = menuRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		staffRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		staffRepository,
		menuRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		staffRepository,
		memberRepository,
		menuRepository,
		txMgr,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)

	calculateBillUseCase := calculateBillUC.NewUseCase(
		memberRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)
	getMemberBill := getMemberBillHandler.NewHandler(calculateBillUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату для услуги
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Member-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований участника
	protected.HandleFunc("/members/{memberId}/bookings", getMemberBookings.Handle).Methods(http.MethodGet)

	// Счёт участника за месяц
	protected.HandleFunc("/members/{memberId}/bill", getMemberBill.Handle).Methods(http.MethodGet)

	// --- Расписание зала ---
	// Бронирования сотрудника на дату (для стойки регистрации)
	protected.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

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
