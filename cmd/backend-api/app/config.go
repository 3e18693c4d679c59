package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/backend-api/internal/server"
	"github.com/agentstation/backend-api/pkg/constants"
	"github.com/agentstation/backend-api/pkg/errors"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files, and the optional config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the file actually read, if any.
	ConfigFile string

	// Listener configuration
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsAddr     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// envPrefix namespaces environment overrides for keys that have no
// well-known variable, e.g. BACKEND_API_READ_TIMEOUT.
const envPrefix = "BACKEND_API"

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by cobra)
//  2. Environment variables (HTTP_HOST, HTTP_PORT, LOG_*, BACKEND_API_*)
//  3. .env and .env.local
//  4. Config file (configFile, else ~/.backend-api.yaml or ./.backend-api.yaml)
//  5. Defaults
//
// An explicitly named config file that cannot be read is an error; the
// default locations are optional.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	_ = v.BindEnv("host", "HTTP_HOST")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_format", "LOG_FORMAT")
	_ = v.BindEnv("log_output", "LOG_OUTPUT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".backend-api")
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		IdleTimeout:     v.GetDuration("idle_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		MetricsAddr:     v.GetString("metrics_addr"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	// HTTP_PORT is applied only when it parses as a valid port.
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		if port, err := ParsePort(envPort); err == nil {
			config.Port = port
		}
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", constants.DefaultHost)
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("read_timeout", constants.DefaultReadTimeout)
	v.SetDefault("write_timeout", constants.DefaultWriteTimeout)
	v.SetDefault("idle_timeout", constants.DefaultIdleTimeout)
	v.SetDefault("shutdown_timeout", constants.DefaultShutdownTimeout)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Server returns the listener settings as a server.Config.
func (c *Config) Server() server.Config {
	return server.Config{
		Host:            c.Host,
		Port:            c.Port,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		IdleTimeout:     c.IdleTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
		MetricsAddr:     c.MetricsAddr,
	}
}

// ParsePort parses a port string, rejecting values outside 1..65535.
func ParsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(portStr))
	if err != nil {
		return 0, errors.NewValidationError("port", portStr, "not a number")
	}
	if port < constants.MinPort || port > constants.MaxPort {
		return 0, errors.NewValidationError("port", port, "must be between 1 and 65535")
	}
	return port, nil
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so real
// environment values win and .env wins over .env.local.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
