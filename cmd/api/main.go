package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/dispatch-service/internal/api/http"
	"github.com/spec-kit/dispatch-service/internal/api/http/handlers"
	"github.com/spec-kit/dispatch-service/internal/auth"
	"github.com/spec-kit/dispatch-service/internal/config"
	"github.com/spec-kit/dispatch-service/internal/events"
	"github.com/spec-kit/dispatch-service/internal/mailer"
	"github.com/spec-kit/dispatch-service/internal/observability"
	"github.com/spec-kit/dispatch-service/internal/persistence"
	"github.com/spec-kit/dispatch-service/internal/repository"
	"github.com/spec-kit/dispatch-service/internal/service"
	"github.com/spec-kit/dispatch-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	templateRepo := repository.NewShiftTemplateRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	notificationStore := repository.NewNotificationStore(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP, cfg.Notification.EmailFrom)
	} else {
		logger.Warn("SMTP_HOST not set; emails will only be logged")
		mail = mailer.NewLogMailer(logger)
	}

	notificationService := service.NewNotificationService(cfg.Notification, service.NotificationDependencies{
		Store:      notificationStore,
		Mailer:     mail,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	notificationService.RegisterHandlers()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	if pg.PoolHandle() != nil {
		admin, err := authService.BootstrapAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword)
		if err != nil {
			logger.Fatal("failed to bootstrap admin account", zap.Error(err))
		}
		if admin != nil {
			logger.Info("bootstrap admin account created", zap.String("email", admin.Email))
		}
	}
	shiftService := service.NewShiftService(service.ShiftDependencies{
		ShiftRepo:  shiftRepo,
		AuditRepo:  auditRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	templateService := service.NewTemplateService(templateRepo, auditRepo, logger)
	analyticsService := service.NewAnalyticsService(shiftRepo)

	var decoder auth.TokenDecoder = authService.TokenManager()
	if cfg.Auth.TokenMode == "legacy" {
		logger.Warn("legacy unsigned bearer tokens enabled")
		decoder = auth.LegacyDecoder{}
	}
	extractor := auth.NewExtractor(decoder)
	guards := auth.NewGuards(extractor)

	digestWorker := worker.NewDigestWorker(notificationService, redis, logger)
	if cfg.Notification.Enabled {
		if err := digestWorker.Start(cfg.Notification.DigestTime); err != nil {
			logger.Fatal("failed to start digest worker", zap.Error(err))
		}
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Shifts:        handlers.NewShiftsHandler(shiftService, extractor),
		Templates:     handlers.NewTemplatesHandler(templateService, extractor),
		Audit:         handlers.NewAuditHandler(auditRepo),
		Analytics:     handlers.NewAnalyticsHandler(analyticsService),
		Notifications: handlers.NewNotificationsHandler(notificationService, digestWorker, extractor),
		Guards:        guards,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if cfg.Notification.Enabled {
		digestWorker.Stop()
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
