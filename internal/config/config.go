package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Storage      StorageConfig
	Notification NotificationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
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

// StorageConfig holds file upload configuration
type StorageConfig struct {
	UploadDir   string
	BaseURL     string
	MaxFileSize int64 // bytes
}

// NotificationConfig tunes the background notification workers
type NotificationConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	WorkerCount   int
	QueueSize     int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffhub"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	maxFileSize, err := strconv.ParseInt(getEnv("STORAGE_MAX_FILE_SIZE", "5242880"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_MAX_FILE_SIZE: %w", err)
	}

	config.Storage = StorageConfig{
		UploadDir:   getEnv("STORAGE_UPLOAD_DIR", "./uploads"),
		BaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		MaxFileSize: maxFileSize,
	}

	batchSize, err := strconv.Atoi(getEnv("NOTIFICATION_BATCH_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_BATCH_SIZE: %w", err)
	}
	flushInterval, err := time.ParseDuration(getEnv("NOTIFICATION_FLUSH_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_FLUSH_INTERVAL: %w", err)
	}
	workerCount, err := strconv.Atoi(getEnv("NOTIFICATION_WORKER_COUNT", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_WORKER_COUNT: %w", err)
	}
	queueSize, err := strconv.Atoi(getEnv("NOTIFICATION_QUEUE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_QUEUE_SIZE: %w", err)
	}

	config.Notification = NotificationConfig{
		BatchSize:     batchSize,
		FlushInterval: flushInterval,
		WorkerCount:   workerCount,
		QueueSize:     queueSize,
	}

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
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("STORAGE_MAX_FILE_SIZE must be positive")
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
