package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/campaign-calendar/internal/api/http"
	"github.com/spec-kit/campaign-calendar/internal/api/http/handlers"
	"github.com/spec-kit/campaign-calendar/internal/auth"
	"github.com/spec-kit/campaign-calendar/internal/delivery"
	"github.com/spec-kit/campaign-calendar/internal/events"
	"github.com/spec-kit/campaign-calendar/internal/observability"
	"github.com/spec-kit/campaign-calendar/internal/persistence"
	"github.com/spec-kit/campaign-calendar/internal/service"
	"github.com/spec-kit/campaign-calendar/internal/worker"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, logger, stores := rt.cfg, rt.logger, rt.stores

	if created, err := persistence.EnsureAccessMap(ctx, stores, cfg.Access.DesignerAddress); err != nil {
		return err
	} else if created {
		logger.Info("default access map stored", zap.String("designer_address", cfg.Access.DesignerAddress))
	}
	if cfg.Seed.OnStart {
		if _, err := persistence.Seed(ctx, stores, cfg.Access.DesignerAddress, time.Now(), logger); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartNotificationWorker(dispatcher, logger, metrics)

	notifier := service.NewAssignmentNotifier(service.AssignmentNotifierDependencies{
		Notifications: stores.Notifications,
		AuditLog:      stores.AuditLog,
		Channel:       delivery.NewChannel(cfg.Delivery, logger),
		Handoff:       delivery.NewLoggingHandoff(logger),
		Dispatcher:    dispatcher,
		Logger:        logger,
		FallbackDelay: cfg.Delivery.FallbackDelay(),
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:      stores.Events,
		UserRepo:       stores.Users,
		DepartmentRepo: stores.Departments,
		Notifier:       notifier,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	activityService := service.NewActivityService(stores.Notifications, stores.AuditLog)
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:       stores.Users,
		DepartmentRepo: stores.Departments,
		AccessMapRepo:  stores.AccessMaps,
		Logger:         logger,
	})

	dependencies := map[string]handlers.Pinger{}
	if rt.pg.PoolHandle() != nil {
		dependencies["postgres"] = rt.pg
	}
	if rt.redis.Enabled() {
		dependencies["redis"] = rt.redis
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Events:           handlers.NewEventsHandler(eventService),
		Activity:         handlers.NewActivityHandler(activityService),
		Directory:        handlers.NewDirectoryHandler(directoryService),
		Access:           handlers.NewAccessHandler(directoryService),
		AccessMiddleware: auth.NewAccessMiddleware(stores.AccessMaps, cfg.Access.CallerHeader, logger),
		Metrics:          metrics,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}
