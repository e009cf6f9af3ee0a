package store

import (
	"github.com/nvalera/storefront-api/internal/logger"
)

// Storages aggregates every persistence backend used by the application.
type Storages struct {
	Documents DocumentStore
}

// NewStorages wires the document store against the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Documents: NewDocumentRepository(db, logger),
	}
}
