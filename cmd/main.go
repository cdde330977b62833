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

	cancelBookingHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/confirm_booking"
	declineBookingHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/decline_booking"
	getAvailableSlotsHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/get_business_bookings"
	getBusinessProfileHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/get_business_profile"
	getPriceQuoteHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/get_price_quote"
	markSlotTakenHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/mark_slot_taken"
	submitBookingHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/submit_booking"
	updateDiscountHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/update_discount"
	updateExclusionsHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/update_exclusions"
	updateOpeningHoursHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/update_opening_hours"
	updateServicesHandler "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/update_services"
	"github.com/m04kA/LSM-AppointmentService/internal/api/middleware"
	"github.com/m04kA/LSM-AppointmentService/internal/config"
	"github.com/m04kA/LSM-AppointmentService/internal/infra/cache"
	bookingRepo "github.com/m04kA/LSM-AppointmentService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/LSM-AppointmentService/internal/infra/storage/profile"
	bookingsService "github.com/m04kA/LSM-AppointmentService/internal/service/bookings"
	profileService "github.com/m04kA/LSM-AppointmentService/internal/service/profile"
	getAvailableSlotsUC "github.com/m04kA/LSM-AppointmentService/internal/usecase/get_available_slots"
	getPriceQuoteUC "github.com/m04kA/LSM-AppointmentService/internal/usecase/get_price_quote"
	submitBookingUC "github.com/m04kA/LSM-AppointmentService/internal/usecase/submit_booking"
	"github.com/m04kA/LSM-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/LSM-AppointmentService/pkg/logger"
	"github.com/m04kA/LSM-AppointmentService/pkg/metrics"
	"github.com/m04kA/LSM-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/LSM-AppointmentService/pkg/txmanager"
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

	log.Info("Starting LSM-AppointmentService...")
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
		profileRepository *profileRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		profileRepository = profileRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		profileRepository = profileRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш профилей с коротким TTL - только для read path профилей,
	// список бронирований всегда читается из хранилища напрямую
	profileCache := cache.New(cfg.Booking.ProfileCacheTTL())
	log.Info("Profile cache initialized (ttl=%s)", cfg.Booking.ProfileCacheTTL())

	// Инициализируем сервисы
	profileSvc := profileService.NewService(profileRepository, profileCache, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		profileSvc,
		cfg.Booking.SlotStepMinutes,
		log,
	)

	submitBookingUseCase, err := submitBookingUC.NewUseCase(
		bookingRepository,
		profileSvc,
		cfg.Booking.ConflictPollAttempts,
		cfg.Booking.PollInterval(),
		cfg.Booking.PhonePattern,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize submit booking use case: %v", err)
	}

	getPriceQuoteUseCase := getPriceQuoteUC.NewUseCase(profileSvc, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getPriceQuote := getPriceQuoteHandler.NewHandler(getPriceQuoteUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	markSlotTaken := markSlotTakenHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessProfile := getBusinessProfileHandler.NewHandler(profileSvc, log)
	updateOpeningHours := updateOpeningHoursHandler.NewHandler(profileSvc, log)
	updateExclusions := updateExclusionsHandler.NewHandler(profileSvc, log)
	updateDiscount := updateDiscountHandler.NewHandler(profileSvc, log)
	updateServices := updateServicesHandler.NewHandler(profileSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Профиль бизнеса
	api.HandleFunc("/businesses/{businessId}/profile",
		getBusinessProfile.Handle).Methods(http.MethodGet)

	// Витринная цена услуги с учетом скидки
	api.HandleFunc("/businesses/{businessId}/services/{serviceId}/price",
		getPriceQuote.Handle).Methods(http.MethodGet)

	// Создание бронирования (клиент не аутентифицируется, достаточно
	// валидного телефона)
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Ручка внешнего детектора конфликтов
	protected.HandleFunc("/bookings/{bookingId}/mark-slot-taken", markSlotTaken.Handle).Methods(http.MethodPatch)

	// --- Управление бизнесом ---
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/hours", updateOpeningHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/exclusions", updateExclusions.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/discount", updateDiscount.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/services", updateServices.Handle).Methods(http.MethodPut)

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
