package service

import (
	"github.com/nvalera/storefront-api/internal/config"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/store"
)

// Services aggregates the application core consumed by the transport layer.
type Services struct {
	CRUDService CRUDService
	AuthService AuthService
}

// NewServices wires the resource engine and the account subsystem against
// the given storages.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	crud := NewCRUDService(storages.Documents, logger)
	return &Services{
		CRUDService: crud,
		AuthService: NewAuthService(storages.Documents, crud, cfg.App, logger),
	}
}
