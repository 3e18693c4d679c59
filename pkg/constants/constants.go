// Package constants provides shared constants used throughout the backend-api codebase.
// This includes listener defaults, timeouts, and file permissions that should be
// consistent across the application.
package constants

import "time"

// Listener defaults
const (
	// DefaultHost binds every network interface
	DefaultHost = "0.0.0.0"

	// DefaultPort is the standard HTTP port
	DefaultPort = 80

	// MinPort is the lowest valid TCP port
	MinPort = 1

	// MaxPort is the highest valid TCP port
	MaxPort = 65535
)

// Timeout constants define HTTP server timeouts
const (
	// DefaultReadTimeout bounds reading an entire request
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds keep-alive connections waiting for the next request
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests get to drain on shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

// CORS constants
const (
	// CORSMaxAge is how long (seconds) browsers may cache a preflight result
	CORSMaxAge = "86400"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
