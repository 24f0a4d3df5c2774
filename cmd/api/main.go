package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/carelink-api/internal/config"
	"github.com/jwalitptl/carelink-api/internal/email"
	appointmentHandler "github.com/jwalitptl/carelink-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/carelink-api/internal/handler/auth"
	caregiverHandler "github.com/jwalitptl/carelink-api/internal/handler/caregiver"
	"github.com/jwalitptl/carelink-api/internal/handler/health"
	libraryHandler "github.com/jwalitptl/carelink-api/internal/handler/library"
	medicalHandler "github.com/jwalitptl/carelink-api/internal/handler/medical"
	messageHandler "github.com/jwalitptl/carelink-api/internal/handler/message"
	patientHandler "github.com/jwalitptl/carelink-api/internal/handler/patient"
	promhandler "github.com/jwalitptl/carelink-api/internal/handler/prometheus"
	serviceRequestHandler "github.com/jwalitptl/carelink-api/internal/handler/servicerequest"
	userHandler "github.com/jwalitptl/carelink-api/internal/handler/user"
	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/repository/postgres"
	"github.com/jwalitptl/carelink-api/internal/resolver"
	"github.com/jwalitptl/carelink-api/internal/router"
	appointmentService "github.com/jwalitptl/carelink-api/internal/service/appointment"
	authService "github.com/jwalitptl/carelink-api/internal/service/auth"
	caregiverService "github.com/jwalitptl/carelink-api/internal/service/caregiver"
	libraryService "github.com/jwalitptl/carelink-api/internal/service/library"
	medicalService "github.com/jwalitptl/carelink-api/internal/service/medical"
	messageService "github.com/jwalitptl/carelink-api/internal/service/message"
	patientService "github.com/jwalitptl/carelink-api/internal/service/patient"
	serviceRequestService "github.com/jwalitptl/carelink-api/internal/service/servicerequest"
	userService "github.com/jwalitptl/carelink-api/internal/service/user"
	"github.com/jwalitptl/carelink-api/pkg/auth"
	"github.com/jwalitptl/carelink-api/pkg/logger"
	"github.com/jwalitptl/carelink-api/pkg/messaging"
	"github.com/jwalitptl/carelink-api/pkg/messaging/redis"
	"github.com/jwalitptl/carelink-api/pkg/metrics"
	"github.com/jwalitptl/carelink-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	metricsHandler := promhandler.New(registry)
	appMetrics := metrics.NewMetrics(registry, "carelink")

	// Mail transport. Only the queue driver needs Redis.
	var queue messaging.Queue
	if cfg.Mail.Driver == config.MailDriverQueue {
		redisQueue, err := redis.NewRedisQueue(context.Background(), redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, appMetrics)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mail queue")
		}
		defer redisQueue.Close()
		queue = redisQueue
	}
	mailer, err := email.New(cfg.Mail, queue, appMetrics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure mailer")
	}

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	caregiverRepo := postgres.NewCaregiverRepository(base)
	availabilityRepo := postgres.NewAvailabilityRepository(base)
	messageRepo := postgres.NewMessageRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	medicalNoteRepo := postgres.NewMedicalNoteRepository(base)
	serviceRequestRepo := postgres.NewServiceRequestRepository(base)
	authorRepo := postgres.NewAuthorRepository(base)
	bookRepo := postgres.NewBookRepository(base)

	res := resolver.New(userRepo, caregiverRepo, authorRepo)
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := auth.NewJWTService(auth.Config{
		Secret:     cfg.JWT.Secret,
		SessionTTL: cfg.JWT.SessionTTL,
		ResetTTL:   cfg.JWT.ResetTTL,
	})

	// Initialize services
	authSvc := authService.NewService(userRepo, caregiverRepo, hasher, tokens, mailer, cfg.Mail.ResetBaseURL)
	userSvc := userService.NewService(userRepo, hasher)
	caregiverSvc := caregiverService.NewService(caregiverRepo, availabilityRepo, hasher)
	patientSvc := patientService.NewService(userRepo, appointmentRepo, medicalNoteRepo, serviceRequestRepo, messageRepo, res)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, caregiverRepo, res)
	medicalSvc := medicalService.NewService(medicalNoteRepo, userRepo, caregiverRepo, res)
	serviceRequestSvc := serviceRequestService.NewService(serviceRequestRepo, userRepo, caregiverRepo, res)
	messageSvc := messageService.NewService(messageRepo, userRepo, caregiverRepo, res)
	librarySvc := libraryService.NewService(authorRepo, bookRepo, res)

	// Initialize handlers
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	r := router.NewRouter(authMiddleware, router.Handlers{
		Health:  health.NewHandler(db),
		Metrics: metricsHandler,
		Public: []router.Handler{
			authHandler.NewHandler(authSvc),
		},
		Protected: []router.Handler{
			userHandler.NewHandler(userSvc, authMiddleware),
			caregiverHandler.NewHandler(caregiverSvc, authMiddleware),
			patientHandler.NewHandler(patientSvc),
			appointmentHandler.NewHandler(appointmentSvc),
			medicalHandler.NewHandler(medicalSvc),
			serviceRequestHandler.NewHandler(serviceRequestSvc),
			messageHandler.NewHandler(messageSvc),
			libraryHandler.NewHandler(librarySvc, authMiddleware),
		},
	}, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		RateTTL:          cfg.RateLimit.TTL,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MaxBodySize:      middleware.DefaultMaxBodySize,
		CORSConfig:       middleware.CORSConfig{AllowOrigins: cfg.CORS.AllowedOrigins, MaxAge: 12 * time.Hour},
		SecurityConfig:   middleware.DefaultSecurityConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := authSvc.Wait(ctx); err != nil {
		log.Error().Err(err).Msg("pending reset mails not sent before shutdown")
	}

	log.Info().Msg("server exited")
}
