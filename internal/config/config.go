package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Config struct {
	Port            uint16
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	HouseUsername   string
	Postgres        PostgresConfig
	Auth            AuthConfig
}

// Load reads configuration from the environment (optionally seeded from
// a .env file) via viper.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig() // .env is optional; env vars alone are fine

	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_LOG_LEVEL", "info")
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("HOUSE_USERNAME", "root")
	v.SetDefault("PG_MAX_OPEN_CONNS", 10)
	v.SetDefault("PG_MAX_IDLE_CONNS", 5)
	v.SetDefault("PG_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("PG_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("JWT_TOKEN_TTL", "30m")

	dsn := v.GetString("PG_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("PG_DSN is required")
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(v.GetString("APP_LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Port:            uint16(v.GetUint32("PORT")),
		LogLevel:        level,
		ShutdownTimeout: v.GetDuration("APP_SHUTDOWN_TIMEOUT"),
		HouseUsername:   v.GetString("HOUSE_USERNAME"),
		Postgres: PostgresConfig{
			DSN:             dsn,
			MaxOpenConns:    v.GetInt("PG_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("PG_MAX_IDLE_CONNS"),
			ConnMaxIdleTime: v.GetDuration("PG_CONN_MAX_IDLE_TIME"),
			ConnMaxLifetime: v.GetDuration("PG_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			JWTSecret: secret,
			TokenTTL:  v.GetDuration("JWT_TOKEN_TTL"),
		},
	}

	return cfg, nil
}
