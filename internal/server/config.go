package server

import (
	"net"
	"strconv"
	"time"

	"github.com/agentstation/backend-api/pkg/constants"
	"github.com/agentstation/backend-api/pkg/errors"
)

// Config holds server configuration.
type Config struct {
	// Listener settings
	Host string
	Port int

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MetricsAddr is the address of the separate Prometheus listener.
	// Empty disables it.
	MetricsAddr string
}

// DefaultConfig returns a Config that binds 0.0.0.0:80.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		ReadTimeout:     constants.DefaultReadTimeout,
		WriteTimeout:    constants.DefaultWriteTimeout,
		IdleTimeout:     constants.DefaultIdleTimeout,
		ShutdownTimeout: constants.DefaultShutdownTimeout,
	}
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the port range and timeouts.
func (c Config) Validate() error {
	if c.Port < constants.MinPort || c.Port > constants.MaxPort {
		return errors.NewConfigError("server", "invalid port",
			errors.NewValidationError("port", c.Port, "must be between 1 and 65535"))
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if d < 0 {
			return errors.NewConfigError("server", "invalid timeout",
				errors.NewValidationError(name, d, "must not be negative"))
		}
	}
	return nil
}
