package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Tracker
	DefaultAccountName string
	StreakLookbackDays int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "dailytrack"),
		DBPassword: getEnv("DB_PASSWORD", "dailytrack"),
		DBName:     getEnv("DB_NAME", "dailytrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Tracker
		DefaultAccountName: getEnv("DEFAULT_ACCOUNT_NAME", "Main Wallet"),
	}

	// Parse streak lookback window
	lookbackStr := getEnv("STREAK_LOOKBACK_DAYS", "365")
	lookback, err := strconv.Atoi(lookbackStr)
	if err != nil || lookback < 1 {
		log.Printf("Warning: invalid STREAK_LOOKBACK_DAYS value '%s', falling back to 365\n", lookbackStr)
		lookback = 365
	}
	config.StreakLookbackDays = lookback

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
