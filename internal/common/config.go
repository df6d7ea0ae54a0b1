package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	Extract  ExtractConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

// OCRConfig holds OCR collaborator configuration
type OCRConfig struct {
	RemoteURL     string // when set, use the remote recognizer instead of tesseract
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	Timeout       time.Duration
}

// ExtractConfig holds extraction and matching behavior flags
type ExtractConfig struct {
	WarrantyYears  int
	MatchThreshold float64
}

// IngestConfig holds receipt-inbox watcher configuration
type IngestConfig struct {
	InboxDirs []string
	Debounce  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        getEnv("DB_PATH", "./homekeeper.db"),
			BusyTimeout: getEnvAsDuration("DB_BUSY_TIMEOUT", 5*time.Second),
		},
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimitRPS:    getEnvAsFloat64("HTTP_RATE_LIMIT_RPS", 20),
			RateLimitBurst:  getEnvAsInt("HTTP_RATE_LIMIT_BURST", 40),
		},
		OCR: OCRConfig{
			RemoteURL:     getEnv("OCR_REMOTE_URL", ""),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 30*time.Second),
		},
		Extract: ExtractConfig{
			WarrantyYears:  getEnvAsInt("WARRANTY_YEARS", 1),
			MatchThreshold: getEnvAsFloat64("MATCH_THRESHOLD", 0.5),
		},
		Ingest: IngestConfig{
			InboxDirs: getEnvAsList("INBOX_DIRS", nil),
			Debounce:  getEnvAsDuration("INBOX_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Extract.WarrantyYears < 1 {
		return NewAppError("CONFIG_ERROR", "WARRANTY_YEARS must be >= 1", ErrInvalidInput)
	}
	if c.Extract.MatchThreshold <= 0 || c.Extract.MatchThreshold >= 1 {
		return NewAppError("CONFIG_ERROR", "MATCH_THRESHOLD must be in (0,1)", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
