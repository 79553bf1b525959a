package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is loaded once at startup and immutable afterwards. The JWT secret
// is injected into the auth service and middleware from here; nothing reads
// the environment after Load returns.
type Config struct {
	Env  string
	Port string

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	RedisAddr string

	JWTSecret string
	TokenTTL  time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		DBHost:    getEnv("DB_HOST", "127.0.0.1"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "leave"),
		DBPass:    getEnv("DB_PASSWORD", "leave"),
		DBName:    getEnv("DB_NAME", "leave_api"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),
		RedisAddr: getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
