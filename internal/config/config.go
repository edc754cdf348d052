package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"wholesaleDelivery/internal/db"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Log      LogConfig
	// SeedDemoData loads the demo catalog and drivers on an empty store.
	SeedDemoData bool
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite DSN; in-memory by default
}

// HTTPConfig contains the buyer/admin HTTP API settings.
type HTTPConfig struct {
	Address string // e.g. ":8080"
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string // gRPC server listen address (e.g., ":50051")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
	// SecretGenerated is set when JWT_SECRET was absent and a random
	// per-process secret is used instead.
	SecretGenerated bool
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | text
}

// ConfigurationError reports a missing or malformed setting. The process
// must not start when Load returns one.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads .env (when present), an optional config file named by
// CONFIG_FILE, and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_path", db.MemoryDSN)
	v.SetDefault("http_address", ":8080")
	v.SetDefault("grpc_address", ":50051")
	v.SetDefault("token_ttl", "12h")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("seed_demo_data", true)

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigurationError{Key: "CONFIG_FILE", Reason: err.Error()}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{Path: v.GetString("db_path")},
		HTTP:     HTTPConfig{Address: v.GetString("http_address")},
		GRPC:     GRPCConfig{Address: v.GetString("grpc_address")},
		Auth: AuthConfig{
			AdminPassword: v.GetString("admin_password"),
			JWTSecret:     v.GetString("jwt_secret"),
			TokenTTL:      v.GetDuration("token_ttl"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log_level")),
			Format: strings.ToLower(v.GetString("log_format")),
		},
		SeedDemoData: v.GetBool("seed_demo_data"),
	}

	if strings.TrimSpace(cfg.Auth.AdminPassword) == "" {
		return nil, &ConfigurationError{Key: "ADMIN_PASSWORD", Reason: "is not set; the admin surface cannot be secured without it"}
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, &ConfigurationError{Key: "TOKEN_TTL", Reason: "must be a positive duration such as 12h"}
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return nil, &ConfigurationError{Key: "LOG_LEVEL", Reason: fmt.Sprintf("unknown level %q", cfg.Log.Level)}
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return nil, &ConfigurationError{Key: "LOG_FORMAT", Reason: fmt.Sprintf("unknown format %q", cfg.Log.Format)}
	}
	if cfg.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Auth.JWTSecret = secret
		cfg.Auth.SecretGenerated = true
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, TokenTTL: %s, Log: %s/%s, Seed: %t, Auth: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address, c.GRPC.Address, c.Auth.TokenTTL, c.Log.Level, c.Log.Format, c.SeedDemoData)
}
