package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/aifa-auth/internal/config"
	myHTTP "github.com/MKhiriev/aifa-auth/internal/handler/http"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/ratelimit"
	"github.com/MKhiriev/aifa-auth/internal/server"
	"github.com/MKhiriev/aifa-auth/internal/service"
	"github.com/MKhiriev/aifa-auth/internal/store"
	"github.com/MKhiriev/aifa-auth/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("aifa-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().
		Str("environment", string(cfg.App.Environment)).
		Str("address", cfg.Server.HTTPAddress).
		Msg("starting with configs")

	storages := buildStorages(cfg, log)

	policy := config.ResolveFailurePolicy(cfg.App.Environment)
	counter := ratelimit.NewRESTCounterStore(ratelimit.RESTCounterConfig{
		Endpoint: cfg.RateLimit.Endpoint,
		Token:    cfg.RateLimit.Token,
	})
	limiter := ratelimit.NewLimiter(counter, cfg.RateLimit, policy, log)

	services := service.NewServices(storages, limiter, cfg.App, log)
	handler := myHTTP.NewHandler(services, cfg.App.Environment, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := buildWorkers(cfg, storages, log)
	background.Run()

	srv.RunServer()

	background.Stop()
}

// buildStorages connects PostgreSQL and runs migrations. In development a
// missing DSN falls back to in-memory repositories so the server starts
// without local infrastructure; validation has already rejected that in
// production.
func buildStorages(cfg *config.StructuredConfig, log *logger.Logger) *store.Storages {
	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	switch {
	case err == nil:
		if err = db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("error running migrations")
		}
		return store.NewStorages(db, log)
	case errors.Is(err, store.ErrStoreUnconfigured) && !cfg.App.Environment.IsProduction():
		log.Warn().Msg("database not configured, using in-memory storage")
		return store.NewMemoryStorages()
	default:
		log.Fatal().Err(err).Msg("error connecting to database")
		return nil
	}
}

// buildWorkers assembles the background jobs. A zero sweep interval
// disables the session sweeper.
func buildWorkers(cfg *config.StructuredConfig, storages *store.Storages, log *logger.Logger) *workers.Workers {
	if cfg.Workers.SweepInterval <= 0 {
		log.Info().Msg("session sweeper disabled")
		return workers.NewWorkers()
	}

	return workers.NewWorkers(
		workers.NewSessionSweeper(storages.SessionRepository, cfg.Workers, log),
	)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
