package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Telegram TelegramConfig
	Admin    AdminConfig
	Jobs     JobsConfig
	Storage  StorageConfig
	Rules    Rules
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
	RulesPath   string
}

// StoreConfig selects the record store backend
type StoreConfig struct {
	Backend         string
	FallbackToLocal bool
	SQLitePath      string
	ConnectTimeout  time.Duration
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
	Secret           string
	AccessExpiration string
}

// TelegramConfig is optional; alerts go to the log when Token is empty.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// AdminConfig seeds the first admin account on an empty store.
type AdminConfig struct {
	Name     string
	Phone    string
	Password string
}

// StorageConfig locates uploaded leave proofs on disk and the authenticated
// URL they are served from.
type StorageConfig struct {
	Path    string
	BaseURL string
}

// JobsConfig sets the company-time hour of the daily inventory jobs.
type JobsConfig struct {
	ReconcileHour int
	LowStockHour  int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RulesPath:   getEnv("RULES_PATH", ""),
	}

	// Record store configuration
	fallback, err := strconv.ParseBool(getEnv("STORE_FALLBACK_LOCAL", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_FALLBACK_LOCAL: %w", err)
	}
	connectTimeout, err := time.ParseDuration(getEnv("STORE_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_CONNECT_TIMEOUT: %w", err)
	}

	config.Store = StoreConfig{
		Backend:         getEnv("STORE_BACKEND", "postgres"),
		FallbackToLocal: fallback,
		SQLitePath:      getEnv("SQLITE_PATH", "data/nala.db"),
		ConnectTimeout:  connectTimeout,
	}

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
		Name:     getEnv("DB_NAME", "nala_aircon"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Telegram configuration
	var chatID int64
	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	config.Telegram = TelegramConfig{
		Token:  getEnv("TELEGRAM_TOKEN", ""),
		ChatID: chatID,
	}

	config.Admin = AdminConfig{
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Phone:    getEnv("ADMIN_PHONE", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	// Background jobs
	reconcileHour, err := strconv.Atoi(getEnv("JOB_RECONCILE_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_RECONCILE_HOUR: %w", err)
	}
	lowStockHour, err := strconv.Atoi(getEnv("JOB_LOW_STOCK_HOUR", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_LOW_STOCK_HOUR: %w", err)
	}
	config.Jobs = JobsConfig{
		ReconcileHour: reconcileHour,
		LowStockHour:  lowStockHour,
	}

	config.Storage = StorageConfig{
		Path:    getEnv("STORAGE_PATH", "data/uploads"),
		BaseURL: getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/api/v1/leave-requests/proof", appPort)),
	}

	// Business rules
	rules, err := LoadRules(config.App.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load business rules: %w", err)
	}
	config.Rules = rules

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	switch c.Store.Backend {
	case "postgres":
		if c.Database.Password == "" && !c.Store.FallbackToLocal {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case "memory":
		slog.Warn("STORE_BACKEND=memory keeps records only until the process exits")
	default:
		return fmt.Errorf("STORE_BACKEND must be postgres, sqlite or memory, got %q", c.Store.Backend)
	}
	for name, hour := range map[string]int{"JOB_RECONCILE_HOUR": c.Jobs.ReconcileHour, "JOB_LOW_STOCK_HOUR": c.Jobs.LowStockHour} {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("%s must be between 0 and 23, got %d", name, hour)
		}
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
