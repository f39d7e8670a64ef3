// Package backend builds the data store and optional event publisher the
// binaries run against.
package backend

import (
	"context"

	"servicios/internal/services"
	"servicios/internal/store"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result is what a factory hands to main.
type Result struct {
	Store store.Store
	// Publisher is nil when AMQP is not configured.
	Publisher services.EventPublisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds what backend creation needs from the application config.
type Config struct {
	Type BackendType

	SQLiteDBPath string

	// Memory backend seeding
	SeedDir  string
	SeedUser string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
