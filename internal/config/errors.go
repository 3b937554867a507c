package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when a configuration
// group is incomplete or invalid.
var (
	// ErrInvalidVaultConfigs indicates invalid vault settings (for example,
	// an empty path, an unknown KDF or cipher, or unusable Argon2 parameters).
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
	// ErrInvalidUIConfigs indicates invalid terminal UI settings (for
	// example, a clipboard TTL longer than a day).
	ErrInvalidUIConfigs = errors.New("invalid ui configuration")
)
