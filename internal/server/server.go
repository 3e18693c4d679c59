// Package server provides the HTTP server for the backend API.
package server

import (
	"context"
	stderrors "errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/backend-api/cmd/application"
	"github.com/agentstation/backend-api/internal/server/metrics"
	"github.com/agentstation/backend-api/pkg/constants"
	"github.com/agentstation/backend-api/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	logger    *zerolog.Logger
	config    Config
	metrics   *metrics.Metrics
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	logger.Debug().Msg("Creating new server instance")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	server := &Server{
		app:       app,
		logger:    logger,
		config:    cfg,
		metrics:   metrics.New(app.Version()),
		startTime: time.Now(),
	}

	logger.Debug().Msg("Server instance created successfully")
	return server, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the public listen address.
func (s *Server) Addr() string {
	return s.config.Addr()
}

// Metrics returns the server's Prometheus collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// Listen binds the public address. Failures are returned as *errors.BindError.
func (s *Server) Listen() (net.Listener, error) {
	return listen(s.Addr())
}

func listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.NewBindError(addr, err)
	}
	return ln, nil
}

// Run binds the public address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests within Config.ShutdownTimeout. When MetricsAddr is
// set the Prometheus listener runs alongside and stops with it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	servers := []*http.Server{s.httpServer(s.Handler())}
	listeners := []net.Listener{ln}

	if s.config.MetricsAddr != "" {
		mln, err := listen(s.config.MetricsAddr)
		if err != nil {
			_ = ln.Close()
			return err
		}
		servers = append(servers, s.httpServer(s.metricsHandler()))
		listeners = append(listeners, mln)
	}

	serverErr := make(chan error, len(servers))
	for i, srv := range servers {
		go func(srv *http.Server, ln net.Listener) {
			s.logger.Info().
				Str("addr", ln.Addr().String()).
				Msg("Server starting")
			if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}(srv, listeners[i])
	}

	var runErr error
	select {
	case runErr = <-serverErr:
		s.logger.Error().Err(runErr).Msg("Server failed")
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = errors.WrapResource("shutdown", "server", "", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	s.logger.Info().
		Dur("uptime", time.Since(s.startTime)).
		Msg("Server stopped gracefully")
	return nil
}

func (s *Server) httpServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		ErrorLog:     log.New(s.logger.With().Str("source", "net/http").Logger(), "", 0),
	}
}
