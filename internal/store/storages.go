package store

import "github.com/MKhiriev/aifa-auth/internal/logger"

// Storages aggregates every repository the application uses, so the service
// layer receives one dependency instead of a growing constructor list.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
}

// NewStorages constructs PostgreSQL-backed repositories over the given
// connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		SessionRepository: NewSessionRepository(db, logger),
	}
}

// NewMemoryStorages constructs the in-memory reference repositories, used
// by tests and by development setups without a database.
func NewMemoryStorages() *Storages {
	return &Storages{
		UserRepository:    NewMemoryUserRepository(),
		SessionRepository: NewMemorySessionRepository(),
	}
}
