package config

import "errors"

// Validation errors returned by [GetStructuredConfig] when a required
// configuration value is absent.
var (
	// ErrNoTokenSignKey is returned when APP_TOKEN_SIGN_KEY is unset.
	// The service cannot issue or verify tokens without it.
	ErrNoTokenSignKey = errors.New("token sign key is not configured")

	// ErrNoDatabaseURI is returned when STORAGE_DB_DATABASE_URI is unset.
	ErrNoDatabaseURI = errors.New("database URI is not configured")
)
