package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Locale           string
	MaxWordLength    int
	PersistQueueSize int
	HTTPAddr         string
	ReloadInterval   time.Duration
	Database         DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	maxWordLength, err := getEnvInt("MAX_WORD_LENGTH", 48)
	if err != nil {
		return nil, err
	}
	queueSize, err := getEnvInt("PERSIST_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	reloadInterval, err := getEnvDuration("RELOAD_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Locale:           getEnv("LOCALE", "en"),
		MaxWordLength:    maxWordLength,
		PersistQueueSize: queueSize,
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		ReloadInterval:   reloadInterval,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "userdict"),
			User:     getEnv("DB_USER", "userdict"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.MaxWordLength <= 0 {
		return nil, fmt.Errorf("MAX_WORD_LENGTH must be positive")
	}
	if cfg.PersistQueueSize <= 0 {
		return nil, fmt.Errorf("PERSIST_QUEUE_SIZE must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
