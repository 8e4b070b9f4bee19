package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	validatorpkg "varanbook/internal/pkg/validator"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultAccessTTL    = "60m"
	defaultRefreshTTL   = "168h"
	defaultResetTTL     = "1h"
	defaultTenantHeader = "X-Tenant-ID"
	defaultBcryptCost   = "12"
	defaultJWTSecret    = "change-me-jwt-secret"
)

// Config carries all runtime settings. It is built once in main and passed
// by reference into every component; nothing reads the environment after
// startup.
type Config struct {
	AppEnv   string `validate:"required"`
	HTTPAddr string `validate:"required"`

	DatabaseURL string `validate:"required"`

	JWTSecret  string `validate:"required,min=16"`
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration

	BcryptCost int

	TenantHeader string `validate:"required"`

	SMTPHost    string
	SMTPPort    int
	SMTPFrom    string `validate:"required,email"`
	FrontendURL string `validate:"required,url"`
}

// Load reads .env (if present) and the process environment, validates the
// result and fails fast on bad values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:       strings.ToLower(getEnv("APP_ENV", "dev")),
		HTTPAddr:     getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:  getEnv("DATABASE_URL", "varanbook.db"),
		JWTSecret:    strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		TenantHeader: getEnv("TENANT_ID_HEADER", defaultTenantHeader),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		FrontendURL:  getEnv("APP_FRONTEND_URL", "http://localhost:5173"),
	}

	var err error
	if cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.ResetTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTTL); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = parseIntEnv("BCRYPT_COST", defaultBcryptCost); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = parseIntEnv("SMTP_PORT", "587"); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if fieldErrs := validatorpkg.Validate(cfg); fieldErrs != nil {
		return fmt.Errorf("invalid configuration: %v", fieldErrs)
	}
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.ResetTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
