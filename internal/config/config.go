package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	SMTP      SMTPConfig
	Lifecycle LifecycleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// SMTPConfig holds outbound mail configuration. Leave Host empty to disable
// email dispatch; the notification log is written regardless.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LifecycleConfig holds attendance and shift lifecycle policy knobs.
type LifecycleConfig struct {
	// DefaultReviewerID receives auto-raised time exceptions.
	DefaultReviewerID string
	// StandardWorkMinutes is the expected working time on a working day.
	StandardWorkMinutes int
	// HRRecipientID receives the expiring-shift scan summary.
	HRRecipientID string
	// ShiftExpiryLookaheadDays is the scan window used by the daily job.
	ShiftExpiryLookaheadDays int
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "time_management"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@localhost"),
	}

	// Lifecycle configuration
	standardWorkMinutes, err := strconv.Atoi(getEnv("STANDARD_WORK_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_WORK_MINUTES: %w", err)
	}

	lookaheadDays, err := strconv.Atoi(getEnv("SHIFT_EXPIRY_LOOKAHEAD_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_EXPIRY_LOOKAHEAD_DAYS: %w", err)
	}

	config.Lifecycle = LifecycleConfig{
		DefaultReviewerID:        getEnv("DEFAULT_REVIEWER_ID", ""),
		StandardWorkMinutes:      standardWorkMinutes,
		HRRecipientID:            getEnv("HR_RECIPIENT_ID", ""),
		ShiftExpiryLookaheadDays: lookaheadDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Lifecycle.DefaultReviewerID == "" {
		return fmt.Errorf("DEFAULT_REVIEWER_ID is required")
	}
	if c.Lifecycle.StandardWorkMinutes <= 0 {
		return fmt.Errorf("STANDARD_WORK_MINUTES must be positive")
	}
	if c.Lifecycle.ShiftExpiryLookaheadDays < 1 || c.Lifecycle.ShiftExpiryLookaheadDays > 30 {
		return fmt.Errorf("SHIFT_EXPIRY_LOOKAHEAD_DAYS must be between 1 and 30")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
