package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/aifa-auth/internal/adapter"
	"github.com/MKhiriev/aifa-auth/internal/authstate"
	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("aifa-auth-client")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	state := authstate.NewStore()
	state.Subscribe(func(authenticated bool) {
		log.Info().Bool("authenticated", authenticated).Msg("auth state changed")
	})

	ui := tui.New(serverAdapter, state, log)
	if err = ui.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
