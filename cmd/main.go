package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobdesk/notifier/internal/config"
	"github.com/jobdesk/notifier/internal/logger"
	"github.com/jobdesk/notifier/internal/metrics"
	"github.com/jobdesk/notifier/internal/repositories"
	"github.com/jobdesk/notifier/internal/server"
	"github.com/jobdesk/notifier/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	alerts := repositories.NewAlertsRepository(dbContext.DB)
	cachedAlerts := repositories.NewCachedAlerts(alerts, cfg.Notifier.AlertsCacheTTL)
	notifications := repositories.NewNotificationsRepository(dbContext.DB)
	messages := repositories.NewMessagesRepository(dbContext.DB)

	bus := EventBus.New()

	notifier := services.NewNotifier(notifications)

	fanout, err := services.NewFanout(bus, cachedAlerts, notifier, cfg.Notifier.FanoutWorkers)
	if err != nil {
		log.Fatalf("can't create fan-out coordinator: %v", err)
	}
	if cfg.Notifier.MaxWritesPerSecond > 0 {
		fanout.SetWriteRateLimit(cfg.Notifier.MaxWritesPerSecond)
	}

	messenger := services.NewMessenger(messages, notifier, bus)
	alertService := services.NewAlertService(alerts, cachedAlerts)

	cleaner, err := services.NewNotificationsCleaner(notifications, cfg.Notifier.RetentionDays)
	if err != nil {
		log.Fatalf("can't create notifications cleaner: %v", err)
	}
	defer cleaner.Stop()

	srv := server.New(cfg.Server.Port, server.Services{
		Alerts:    alertService,
		Notifier:  notifier,
		Messenger: messenger,
		Fanout:    fanout,
		Publisher: bus,
	})
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("server stopped unexpectedly: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
	}
	log.Info("Services stopped.")
}
