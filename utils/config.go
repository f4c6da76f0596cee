package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Blog     BlogConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
}

// BlogConfig holds the content configuration
type BlogConfig struct {
	Categories           []string
	Moods                []string
	AuthorName           string
	DefaultCategory      string
	DefaultMood          string
	WordsPerMinute       int
	SweepIntervalSeconds int
	AdminToken           string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port                 int
	MaxRequestsPerMinute int
}

// LoadConfig loads configuration from .env file
func LoadConfig(envPath string, log *logrus.Logger) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}

	if err := godotenv.Load(envPath); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	categories := parseList(getEnv("BLOG_CATEGORIES", "Reflections,Lifestyle,Legal,Faith,Dreams"))
	moods := parseList(getEnv("BLOG_MOODS", "Quiet,Restless,Inspired,Melancholy"))

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Midnight Hub"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Blog: BlogConfig{
			Categories:           categories,
			Moods:                moods,
			AuthorName:           getEnv("BLOG_AUTHOR_NAME", "Mosunmola, Esq"),
			DefaultCategory:      getEnv("BLOG_DEFAULT_CATEGORY", firstOf(categories, "Reflections")),
			DefaultMood:          getEnv("BLOG_DEFAULT_MOOD", firstOf(moods, "Quiet")),
			WordsPerMinute:       getEnvAsInt("BLOG_WORDS_PER_MINUTE", 200),
			SweepIntervalSeconds: getEnvAsInt("BLOG_SWEEP_INTERVAL_SECONDS", 30),
			AdminToken:           getEnv("BLOG_ADMIN_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./midnight.db"),
		},
		Server: ServerConfig{
			Port:                 getEnvAsInt("SERVER_PORT", 8080),
			MaxRequestsPerMinute: getEnvAsInt("SERVER_MAX_REQUESTS_PER_MINUTE", 120),
		},
	}

	// validation
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	log.WithField("file", envPath).Info("Config loaded successfully")
	return config, nil
}

// parseList parses a comma-separated list of labels
func parseList(listStr string) []string {
	parts := strings.Split(listStr, ",")

	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			labels = append(labels, trimmed)
		}
	}

	return labels
}

// firstOf returns the first element of list, or fallback when empty
func firstOf(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[0]
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if len(config.Blog.Categories) == 0 {
		return fmt.Errorf("BLOG_CATEGORIES must name at least one category")
	}
	if len(config.Blog.Moods) == 0 {
		return fmt.Errorf("BLOG_MOODS must name at least one mood")
	}
	if config.Blog.SweepIntervalSeconds < 1 {
		return fmt.Errorf("BLOG_SWEEP_INTERVAL_SECONDS must be positive")
	}
	if config.Blog.WordsPerMinute < 1 {
		return fmt.Errorf("BLOG_WORDS_PER_MINUTE must be positive")
	}

	// admin surface is disabled without a token rather than left open
	if config.Blog.AdminToken == "" {
		return fmt.Errorf("BLOG_ADMIN_TOKEN environment variable is required")
	}

	// if we are storing the db in a nested directory, create the directory
	dbDir := filepath.Dir(config.Database.Path)
	if dbDir != "." && dbDir != "" {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	return nil
}
