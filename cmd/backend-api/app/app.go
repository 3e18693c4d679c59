// Package app provides the application context and dependency management
// for the backend-api CLI: configuration, logging, and command wiring.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/backend-api/cmd/application"
	"github.com/agentstation/backend-api/internal/server"
	"github.com/agentstation/backend-api/pkg/errors"
	"github.com/agentstation/backend-api/pkg/logging"
)

var _ application.Application = (*App)(nil)

// App represents the backend-api application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value, empty when unset.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ServerConfig returns the effective listener configuration.
func (a *App) ServerConfig() server.Config {
	return a.config.Server()
}

// LoggingConfig returns the effective logger configuration.
func (a *App) LoggingConfig() logging.Config {
	return *loggingConfig(a.config)
}

// ConfigFileUsed returns the path of the config file read, if any.
func (a *App) ConfigFileUsed() string {
	return a.config.ConfigFile
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
