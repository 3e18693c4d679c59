// Package application provides the application interface for backend-api commands.
//
// Commands and the server accept this interface rather than the concrete
// app.App type so they can be exercised with application.Mock in tests:
//
//	mock := &application.Mock{
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	srv, err := server.New(mock, server.DefaultConfig())
package application

import "github.com/rs/zerolog"

// Application provides what commands and the HTTP server need from the app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
