// Package config provides the command that prints the effective configuration.
package config

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/backend-api/cmd/application"
	"github.com/agentstation/backend-api/internal/cmd/output"
	"github.com/agentstation/backend-api/internal/server"
	"github.com/agentstation/backend-api/pkg/logging"
)

// Application is what the config command needs from the app.
type Application interface {
	application.Application
	ServerConfig() server.Config
	LoggingConfig() logging.Config
	ConfigFileUsed() string
}

// Effective is the resolved configuration as printed by the command.
type Effective struct {
	ConfigFile      string `json:"config_file" yaml:"config_file"`
	Host            string `json:"host" yaml:"host"`
	Port            int    `json:"port" yaml:"port"`
	ReadTimeout     string `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    string `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     string `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout string `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MetricsAddr     string `json:"metrics_addr" yaml:"metrics_addr"`
	LogLevel        string `json:"log_level" yaml:"log_level"`
	LogFormat       string `json:"log_format" yaml:"log_format"`
	LogOutput       string `json:"log_output" yaml:"log_output"`
}

// NewCommand creates the config command.
func NewCommand(app Application) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration the server would start with after merging
defaults, the config file, .env files, environment variables, and global flags.`,
		Example: `  backend-api config
  backend-api config -o yaml
  HTTP_PORT=8080 backend-api config -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			if format == "" {
				format = output.DetectFormat("")
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), Resolve(app))
		},
	}
}

// Resolve collects the effective configuration from app.
func Resolve(app Application) Effective {
	srv := app.ServerConfig()
	logCfg := app.LoggingConfig()

	configFile := app.ConfigFileUsed()
	if configFile == "" {
		configFile = "(none)"
	}

	return Effective{
		ConfigFile:      configFile,
		Host:            srv.Host,
		Port:            srv.Port,
		ReadTimeout:     srv.ReadTimeout.String(),
		WriteTimeout:    srv.WriteTimeout.String(),
		IdleTimeout:     srv.IdleTimeout.String(),
		ShutdownTimeout: srv.ShutdownTimeout.String(),
		MetricsAddr:     srv.MetricsAddr,
		LogLevel:        logCfg.Level,
		LogFormat:       logCfg.Format,
		LogOutput:       logCfg.Output,
	}
}
