package service

import (
	"github.com/MKhiriev/aifa-auth/internal/config"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/password"
	"github.com/MKhiriev/aifa-auth/internal/ratelimit"
	"github.com/MKhiriev/aifa-auth/internal/store"
)

// Services aggregates every service the transport layer consumes.
type Services struct {
	AuthService AuthService
}

// NewServices wires the service layer from its dependencies.
func NewServices(storages *store.Storages, limiter ratelimit.Limiter, cfg config.App, logger *logger.Logger) *Services {
	verifier := password.NewVerifier(cfg.BcryptCost)

	return &Services{
		AuthService: NewAuthService(storages, limiter, verifier, cfg, logger),
	}
}
