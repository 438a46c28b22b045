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

	cancelAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_appointment"
	checkInHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/check_in"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	createScheduleRequestHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_schedule_request"
	decideScheduleRequestHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/decide_schedule_request"
	findNearestSalonHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/find_nearest_salon"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_customer_appointments"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_salon_appointments"
	issueCheckinTokenHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/issue_checkin_token"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	checkinTokenRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/checkintoken"
	scheduleRequestRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedulerequest"
	salonServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	calendarService "github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
	scheduleService "github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	cancelAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_appointment"
	checkInUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_in"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	findNearestSalonUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_nearest_salon"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	issueCheckinTokenUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/issue_checkin_token"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// deadTokenRetention сколько хранить просроченные/погашенные токены до удаления
const deadTokenRetention = 24 * time.Hour

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

	log.Info("Starting SMC-SchedulingService...")
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

	// Инициализируем интеграционного клиента
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (SalonService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository     *appointmentRepo.Repository
		scheduleRequestRepository *scheduleRequestRepo.Repository
		checkinTokenRepository    *checkinTokenRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRequestRepository = scheduleRequestRepo.NewRepository(wrappedDB)
		checkinTokenRepository = checkinTokenRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRequestRepository = scheduleRequestRepo.NewRepository(db)
		checkinTokenRepository = checkinTokenRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(
		appointmentRepository,
		scheduleRequestRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRequestRepository,
		salonClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salonClient,
		calendarSvc,
		&getAvailableSlotsUC.RealTimeProvider{},
		getAvailableSlotsUC.Config{
			SlotGranularityMinutes:  cfg.Booking.SlotGranularityMinutes,
			AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRequestRepository,
		salonClient,
		txMgr,
		&createAppointmentUC.RealTimeProvider{},
		createAppointmentUC.Config{
			AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
		},
		log,
	)

	findNearestSalonUseCase := findNearestSalonUC.NewUseCase(
		salonClient,
		getAvailableSlotsUseCase,
		&findNearestSalonUC.RealTimeProvider{},
		findNearestSalonUC.Config{
			DefaultRadiusKm:      cfg.PanicMode.DefaultRadiusKm,
			DefaultWithinMinutes: cfg.PanicMode.DefaultWithinMinutes,
		},
		log,
	)

	issueCheckinTokenUseCase := issueCheckinTokenUC.NewUseCase(
		checkinTokenRepository,
		appointmentRepository,
		&issueCheckinTokenUC.RealTimeProvider{},
		issueCheckinTokenUC.Config{
			TokenTTLMinutes: cfg.CheckIn.TokenTTLMinutes,
		},
		log,
	)

	checkInUseCase := checkInUC.NewUseCase(
		checkinTokenRepository,
		appointmentRepository,
		txMgr,
		&checkInUC.RealTimeProvider{},
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		&cancelAppointmentUC.RealTimeProvider{},
		cancelAppointmentUC.Config{
			EarlyThresholdHours: cfg.Cancellation.EarlyThresholdHours,
			LateFeePercent:      cfg.Cancellation.LateFeePercent,
			NoShowFeePercent:    cfg.Cancellation.NoShowFeePercent,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	findNearestSalon := findNearestSalonHandler.NewHandler(findNearestSalonUseCase, log)
	issueCheckinToken := issueCheckinTokenHandler.NewHandler(issueCheckinTokenUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	createScheduleRequest := createScheduleRequestHandler.NewHandler(scheduleSvc, log)
	decideScheduleRequest := decideScheduleRequestHandler.NewHandler(scheduleSvc, log)

	// Фоновая чистка просроченных check-in токенов
	stopJanitorCh := make(chan struct{})
	go func() {
		interval := time.Duration(cfg.CheckIn.CleanupIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopJanitorCh:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				now := time.Now()
				expired, err := checkinTokenRepository.ExpireStale(ctx, now)
				if err != nil {
					log.Error("Token janitor: failed to expire stale tokens: %v", err)
				} else if expired > 0 {
					log.Info("Token janitor: expired %d stale tokens", expired)
				}
				deleted, err := checkinTokenRepository.DeleteDeadBefore(ctx, now.Add(-deadTokenRetention))
				if err != nil {
					log.Error("Token janitor: failed to delete dead tokens: %v", err)
				} else if deleted > 0 {
					log.Info("Token janitor: deleted %d dead tokens", deleted)
				}
				cancel()
			}
		}
	}()
	log.Info("Check-in token janitor started (interval=%dm)", cfg.CheckIn.CleanupIntervalMinutes)

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

	// Получение доступных слотов салона на дату
	api.HandleFunc("/salons/{salonId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Поиск ближайшего салона со свободным слотом (panic mode)
	api.HandleFunc("/salons/nearest", findNearestSalon.Handle).Methods(http.MethodPost)

	// Регистрация прибытия по токену (терминал салона)
	api.HandleFunc("/check-in", checkIn.Handle).Methods(http.MethodPost)

	// Выдача walk-in токена (терминал салона)
	api.HandleFunc("/salons/{salonId}/walkin-token",
		issueCheckinToken.HandleForWalkIn).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи с расчётом штрафа
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (для салона)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Выдача check-in токена для записи
	protected.HandleFunc("/appointments/{appointmentId}/checkin-token",
		issueCheckinToken.HandleForAppointment).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/users/{userId}/appointments",
		getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	// Список записей салона
	protected.HandleFunc("/salons/{salonId}/appointments",
		getSalonAppointments.Handle).Methods(http.MethodGet)

	// --- Заявки на изменение графика ---
	// Создание заявки (отпуск / изменение смены)
	protected.HandleFunc("/schedule-requests", createScheduleRequest.Handle).Methods(http.MethodPost)

	// Решение по заявке (для менеджера салона)
	protected.HandleFunc("/schedule-requests/{requestId}/decision",
		decideScheduleRequest.Handle).Methods(http.MethodPatch)

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

	// Останавливаем фоновые задачи
	close(stopJanitorCh)
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
