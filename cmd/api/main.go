package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/encounter-engine/internal/config"
	"github.com/jwebster45206/encounter-engine/internal/handlers"
	"github.com/jwebster45206/encounter-engine/internal/logger"
	"github.com/jwebster45206/encounter-engine/internal/middleware"
	redisstore "github.com/jwebster45206/encounter-engine/internal/storage"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/jwebster45206/encounter-engine/pkg/storage"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
	"github.com/jwebster45206/encounter-engine/pkg/treasure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Encounter Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage", cfg.Storage)

	tb := tables.Default()
	if cfg.LocationsFile != "" {
		tb, err = tb.LoadLocations(cfg.LocationsFile)
		if err != nil {
			log.Error("Failed to load locations file", "path", cfg.LocationsFile, "error", err)
			os.Exit(1)
		}
		log.Info("Loaded location overrides", "path", cfg.LocationsFile, "locations", len(tb.Locations()))
	}

	var store storage.Storage
	switch cfg.Storage {
	case "memory":
		store = storage.NewMemoryStorage(cfg.ResultTTL)
		log.Info("Using in-memory result storage")
	default:
		rs, err := redisstore.NewRedisStorage(cfg.RedisURL, cfg.ResultTTL, log)
		if err != nil {
			log.Error("Failed to create Redis storage", "error", err)
			os.Exit(1)
		}
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err = rs.WaitForConnection(storageCtx)
		storageCancel()
		if err != nil {
			log.Error("Failed to connect to storage", "error", err)
			os.Exit(1)
		}
		store = rs
	}

	balancer := encounter.NewBalancer(tb, encounter.WithLogger(log))
	allocator := treasure.NewAllocator(tb, treasure.WithLogger(log))

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	encounterHandler := handlers.NewEncounterHandler(balancer, allocator, store, log)
	mux.Handle("/v1/encounters", encounterHandler)
	mux.Handle("/v1/encounters/", encounterHandler)

	mux.Handle("/v1/treasure", handlers.NewTreasureHandler(allocator, log))
	mux.Handle("/v1/locations", handlers.NewLocationsHandler(tb, log))
	mux.Handle("/v1/roll", handlers.NewRollHandler(log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.LoggerWith(log, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
