package config

import (
	"errors"
	"os"
)

// ErrMissingJWTSecret is returned when the server starts in release mode
// without an explicit signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when GIN_MODE is release")

type Config struct {
	Port       string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	GinMode    string
}

// Load reads configuration from the environment. The signing secret has a
// development fallback but is mandatory in release mode.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "taskuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskpassword"),
		DBName:     getEnv("DB_NAME", "task_assignment"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		GinMode:    getEnv("GIN_MODE", "debug"),
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, ErrMissingJWTSecret
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
