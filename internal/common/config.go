package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Mailbox  MailboxConfig
	Report   ReportConfig
	Database DatabaseConfig
	Rules    RulesConfig
}

// MailboxConfig holds IMAP-related configuration
type MailboxConfig struct {
	Addr     string // host:port, TLS
	Username string
	Password string
	Folder   string
	DaysBack int
	MarkSeen bool
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	OutputDir string
}

// DatabaseConfig holds run-history database configuration
type DatabaseConfig struct {
	DSN         string // postgres DSN; empty disables run history unless --inmem
	DialTimeout time.Duration
}

// RulesConfig holds recognition rule-table configuration
type RulesConfig struct {
	Path string // optional JSON rule-table overlay
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory is honored when present.
func LoadConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Mailbox: MailboxConfig{
			Addr:     getEnv("IMAP_ADDR", "imap.gmail.com:993"),
			Username: getEnv("IMAP_USERNAME", ""),
			Password: getEnv("IMAP_PASSWORD", ""),
			Folder:   getEnv("IMAP_MAILBOX", "INBOX"),
			DaysBack: getEnvAsInt("SEARCH_DAYS_BACK", 30),
			MarkSeen: getEnvAsBool("IMAP_MARK_SEEN", true),
		},
		Report: ReportConfig{
			OutputDir: getEnv("OUTPUT_DIR", "./output"),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_URL", ""),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Rules: RulesConfig{
			Path: getEnv("RULES_FILE", ""),
		},
	}
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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

// ValidateMailbox checks the settings required for mail mode.
func (c *Config) ValidateMailbox() error {
	if c.Mailbox.Addr == "" {
		return NewAppError("CONFIG_ERROR", "IMAP_ADDR is required", ErrInvalidInput)
	}
	if c.Mailbox.Username == "" {
		return NewAppError("CONFIG_ERROR", "IMAP_USERNAME is required", ErrInvalidInput)
	}
	if c.Mailbox.Password == "" {
		return NewAppError("CONFIG_ERROR", "IMAP_PASSWORD is required", ErrInvalidInput)
	}
	return nil
}
