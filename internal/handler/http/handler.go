// Package http implements the HTTP transport layer of the application:
// routes, the authentication middleware and authorization gates, and the
// thin per-resource handlers that delegate to the service layer. All
// user-visible text is rendered through the fault dictionary; handlers
// themselves construct no message strings.
package http

import (
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/service"
)

// Handler bundles the services and configuration consumed by every route.
type Handler struct {
	services *service.Services

	// defaultLanguage is used when a request's Accept-Language header
	// names no supported language.
	defaultLanguage string

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(services *service.Services, defaultLanguage string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}
