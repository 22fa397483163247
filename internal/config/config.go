// Package config provides configuration loading for the showcase server.
//
// Configuration comes from an optional config.yaml plus SHOWCASE_* environment
// variables (env wins). Defaults make `go run ./cmd/server` work out of the box
// except for the admin secret, which has no default on purpose.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Admin  AdminConfig  `mapstructure:"admin"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"` // dev or prod; prod marks cookies Secure
}

// DBConfig holds SQLite configuration.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// AdminConfig holds the single hardcoded admin login path.
//
// Email is the one address the admin gate accepts; Password is the server-side
// secret compared (bcrypt) at /api/auth/admin. This pair is the only
// privilege-granting mechanism in the system.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// IsProd reports whether the server runs in production mode.
func (c ServerConfig) IsProd() bool {
	return c.Environment == "prod"
}

// Load reads configuration from config.yaml (optional) and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// SHOWCASE_SERVER_PORT, SHOWCASE_DB_PATH, SHOWCASE_ADMIN_PASSWORD, ...
	v.SetEnvPrefix("SHOWCASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Nested keys that only arrive via env need explicit binds (viper quirk).
	v.BindEnv("admin.email", "SHOWCASE_ADMIN_EMAIL")
	v.BindEnv("admin.password", "SHOWCASE_ADMIN_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
		// No config file is fine — env + defaults carry everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.environment", "dev")
	v.SetDefault("db.path", "data/showcase.db")
	v.SetDefault("admin.email", "admin@showcase.local")
	// admin.password has no default — an unset secret disables the gate.
}
