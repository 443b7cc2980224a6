package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weather-finder/internal/api/http"
	"github.com/i474232898/weather-finder/internal/config"
	"github.com/i474232898/weather-finder/internal/scheduler"
	"github.com/i474232898/weather-finder/internal/store"
	"github.com/i474232898/weather-finder/internal/weather"
	"github.com/i474232898/weather-finder/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	geocoder, forecasts := providers.FromConfig(cfg)
	log.Printf("INFO: geocoding via %s, forecasts via %s", geocoder.Name(), forecasts.Name())

	// In-memory session store with configured retention.
	sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxIdle)

	service := weather.NewService(sessions, geocoder, forecasts, weather.NewIcons(cfg.IconURLTemplate), cfg.DefaultLocation)

	// Scheduler that periodically drops idle sessions.
	sched := scheduler.New(service, cfg.SweepInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp()
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

