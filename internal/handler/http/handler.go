package http

import (
	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/service"
)

type Handler struct {
	services *service.Services

	// environment drives the few transport-level branches that differ
	// between development and production: cookie Secure attribute and
	// error-message verbosity.
	environment config.Environment

	logger *logger.Logger
}

func NewHandler(services *service.Services, environment config.Environment, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		environment: environment,
		logger:      logger,
	}
}
