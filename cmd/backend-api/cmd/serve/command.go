// Package serve provides the command that runs the backend API server.
package serve

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/backend-api/cmd/application"
	"github.com/agentstation/backend-api/internal/cmd/emoji"
	"github.com/agentstation/backend-api/internal/server"
)

// Application is what the serve command needs from the app.
type Application interface {
	application.Application
	ServerConfig() server.Config
}

// NewCommand creates the serve command.
func NewCommand(app Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the backend API server",
		Long: `Start the HTTP server.

GET / answers with a fixed plain-text greeting. Every response allows
cross-origin requests from any origin. Any other path returns 404 and any
other method on / returns 405.

The server binds 0.0.0.0:80 unless configured otherwise. Binding a port
below 1024 usually needs elevated privileges. A bind failure exits with
status 1.`,
		Example: `  # Bind 0.0.0.0:80
  backend-api serve

  # Custom port
  backend-api serve --port 8080

  # Expose Prometheus metrics on a separate listener
  backend-api serve --port 8080 --metrics-addr 127.0.0.1:9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := parseConfig(cmd, app.ServerConfig())
			return Run(cmd.Context(), app, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Duration("shutdown-timeout", defaults.ShutdownTimeout, "Time allowed for in-flight requests on shutdown")
	cmd.Flags().String("metrics-addr", "", "Address for the Prometheus metrics listener (disabled when empty)")

	return cmd
}

// Run starts the server on cfg and blocks until ctx is cancelled.
// Progress lines go to out; structured logs go to the app logger.
func Run(ctx context.Context, app application.Application, cfg server.Config, out io.Writer) error {
	logger := app.Logger()

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("metrics_addr", cfg.MetricsAddr).
		Str("version", app.Version()).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return err
	}

	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s API server listening on http://%s\n", emoji.Info, ln.Addr())
	fmt.Fprintln(out, "   Press Ctrl+C to stop")

	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
	return nil
}

// parseConfig applies flags the user set explicitly on top of base.
func parseConfig(cmd *cobra.Command, base server.Config) server.Config {
	cfg := base
	flags := cmd.Flags()

	if flags.Changed("host") {
		cfg.Host = mustGetString(cmd, "host")
	}
	if flags.Changed("port") {
		cfg.Port = mustGetInt(cmd, "port")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = mustGetDuration(cmd, "read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = mustGetDuration(cmd, "write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = mustGetDuration(cmd, "idle-timeout")
	}
	if flags.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout = mustGetDuration(cmd, "shutdown-timeout")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = mustGetString(cmd, "metrics-addr")
	}

	return cfg
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
