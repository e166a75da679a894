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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkAvailabilityHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/create_booking"
	createReviewHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/create_review"
	findAvailableCrewHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/find_available_crew"
	getBookingHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/get_booking"
	getCrewScheduleHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/get_crew_schedule"
	getFreeWindowsHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/get_free_windows"
	listBookingsHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/list_bookings"
	listCrewHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/list_crew"
	listCrewReviewsHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/list_crew_reviews"
	markBookingPaidHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/mark_booking_paid"
	serviceCatalogHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/service_catalog"
	updateBookingStatusHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/update_booking_status"
	updateCrewScheduleHandler "github.com/m04kA/SMC-CrewBooking/internal/api/handlers/update_crew_schedule"
	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/config"
	windowsCache "github.com/m04kA/SMC-CrewBooking/internal/infra/cache/windows"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/catalog"
	reviewRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/review"
	scheduleRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/schedule"
	identityClient "github.com/m04kA/SMC-CrewBooking/internal/integrations/identity"
	bookingsService "github.com/m04kA/SMC-CrewBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-CrewBooking/internal/service/catalog"
	crewService "github.com/m04kA/SMC-CrewBooking/internal/service/crew"
	reviewsService "github.com/m04kA/SMC-CrewBooking/internal/service/reviews"
	scheduleService "github.com/m04kA/SMC-CrewBooking/internal/service/schedule"
	checkAvailabilityUC "github.com/m04kA/SMC-CrewBooking/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CrewBooking/internal/usecase/create_booking"
	findAvailableCrewUC "github.com/m04kA/SMC-CrewBooking/internal/usecase/find_available_crew"
	getFreeWindowsUC "github.com/m04kA/SMC-CrewBooking/internal/usecase/get_free_windows"
	"github.com/m04kA/SMC-CrewBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
	"github.com/m04kA/SMC-CrewBooking/pkg/metrics"
	"github.com/m04kA/SMC-CrewBooking/pkg/txmanager"
)

// publisherCloser публикация событий с закрытием соединения при остановке
type publisherCloser interface {
	Publish(ctx context.Context, event events.Envelope) error
	Close() error
}

func main() {
	// Переменные окружения из .env (если файл есть) переопределяют config.toml
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to read .env: %v\n", err)
	}

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

	log.Info("Starting SMC-CrewBooking...")
	log.Info("Configuration loaded from config.toml")

	// Метрики собираются всегда; в глобальный реестр и /metrics попадают только если включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}
	stopMetricsCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш свободных окон
	var cache interface {
		getFreeWindowsUC.WindowsCache
		createBookingUC.WindowsCache
	} = windowsCache.NopCache{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, free windows cache disabled: %v", err)
		} else {
			cache = windowsCache.NewRedisCache(redisClient, cfg.Redis.TTL())
			log.Info("Free windows cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
		}
	}

	// Публикация доменных событий
	var publisher publisherCloser = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Domain events are published to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Инициализируем интеграционных клиентов
	identity := identityClient.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s, timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Движок доступности
	engine := availability.NewEngine(bookingRepository, metricsCollector, log)

	// Операционное окно по умолчанию (уже проверено в config.Validate)
	dayStart, dayEnd, _ := cfg.Availability.Window()
	var defaultQuantum *time.Duration
	if q := cfg.Availability.Quantum(); q > 0 {
		defaultQuantum = &q
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, cache, publisher, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	reviewSvc := reviewsService.NewService(bookingRepository, reviewRepository, publisher, txMgr, log)
	crewSvc := crewService.NewService(identity, reviewRepository, log)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		scheduleService.Defaults{
			DayStart:       dayStart,
			DayEnd:         dayEnd,
			QuantumMinutes: cfg.Availability.QuantumMinutes,
		},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		engine,
		identity,
		cache,
		publisher,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(engine, log)
	findAvailableCrewUseCase := findAvailableCrewUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		identity,
		findAvailableCrewUC.Defaults{DayStart: dayStart, DayEnd: dayEnd},
		log,
	)
	getFreeWindowsUseCase := getFreeWindowsUC.NewUseCase(
		engine,
		scheduleRepository,
		cache,
		metricsCollector,
		getFreeWindowsUC.Defaults{
			DayStart: dayStart,
			DayEnd:   dayEnd,
			Quantum:  defaultQuantum,
		},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	markBookingPaid := markBookingPaidHandler.NewHandler(bookingSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	listCrewReviews := listCrewReviewsHandler.NewHandler(reviewSvc, log)
	listCrew := listCrewHandler.NewHandler(crewSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	findAvailableCrew := findAvailableCrewHandler.NewHandler(findAvailableCrewUseCase, log)
	getFreeWindows := getFreeWindowsHandler.NewHandler(getFreeWindowsUseCase, log)
	getCrewSchedule := getCrewScheduleHandler.NewHandler(scheduleSvc, log)
	updateCrewSchedule := updateCrewScheduleHandler.NewHandler(scheduleSvc, log)
	serviceCatalog := serviceCatalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог услуг ---
	api.HandleFunc("/services", serviceCatalog.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", serviceCatalog.Get).Methods(http.MethodGet)

	// --- Исполнители ---
	api.HandleFunc("/crew", listCrew.Handle).Methods(http.MethodGet)
	api.HandleFunc("/crew/available", findAvailableCrew.Handle).Methods(http.MethodGet)
	api.HandleFunc("/crew/{crewId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/crew/{crewId}/free-windows", getFreeWindows.Handle).Methods(http.MethodGet)
	api.HandleFunc("/crew/{crewId}/schedule", getCrewSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/crew/{crewId}/reviews", listCrewReviews.Handle).Methods(http.MethodGet)

	// Глобальное расписание
	api.HandleFunc("/schedule", getCrewSchedule.HandleGlobal).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (JWT или X-User-ID / X-User-Role от gateway)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", markBookingPaid.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/review", createReview.Handle).Methods(http.MethodPost)

	// --- Расписания (crew для себя, admin для всех) ---
	protected.HandleFunc("/crew/{crewId}/schedule", updateCrewSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule", updateCrewSchedule.HandleGlobal).Methods(http.MethodPut)

	// --- Управление каталогом (admin) ---
	protected.HandleFunc("/services", serviceCatalog.Create).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", serviceCatalog.Update).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", serviceCatalog.Delete).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
