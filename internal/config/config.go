package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the invoicing engine
type Config struct {
	// Database settings. DATABASE_URL is optional: without it the engine
	// serves the built-in sample directory and random invoice numbers.
	DatabaseURL    string
	MaxConnections int

	// Trigger settings
	RunSchedule    string // Cron expression (default: 15th of month, 09:00)
	RunImmediately bool   // Kick one run at startup (testing)
	HTTPAddr       string // Manual trigger listener
	DryRun         bool   // Compute and log, but send nothing

	// Company identity printed on invoices and emails
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string

	// Billing settings
	TaxRate float64 // Percent, e.g. 8.5

	// SMTP settings
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// S3 archive settings
	S3Bucket   string
	S3Region   string
	S3Endpoint string // MinIO or other S3-compatible storage

	// Stripe settings
	StripeAPIKey string

	// Feature flags
	EnableEmail     bool
	EnableS3        bool
	EnableStripe    bool
	EnableTimesheet bool

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 10),

		RunSchedule:    getEnv("BILLING_SCHEDULE", "0 9 15 * *"), // 15th at 09:00
		RunImmediately: getEnvBool("RUN_IMMEDIATELY", false),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DryRun:         getEnvBool("BILLING_DRY_RUN", false),

		CompanyName:    getEnv("COMPANY_NAME", "Daytocare Health Services"),
		CompanyAddress: getEnv("COMPANY_ADDRESS", ""),
		CompanyEmail:   getEnv("COMPANY_EMAIL", "finance@dtchealthservices.com"),
		CompanyPhone:   getEnv("COMPANY_PHONE", "(555) 123-4567"),

		TaxRate: getEnvFloat("TAX_RATE", 0),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    getEnv("EMAIL_FROM", "finance@dtchealthservices.com"),
		FromName:     getEnv("EMAIL_FROM_NAME", "Daytocare Health Services"),

		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Region:   getEnv("S3_REGION", "us-east-1"),
		S3Endpoint: os.Getenv("S3_ENDPOINT"),

		StripeAPIKey: os.Getenv("STRIPE_API_KEY"),

		EnableEmail:     getEnvBool("ENABLE_EMAIL", true),
		EnableS3:        getEnvBool("ENABLE_S3", false),
		EnableStripe:    getEnvBool("ENABLE_STRIPE", false),
		EnableTimesheet: getEnvBool("ENABLE_TIMESHEET", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxConnections < 1 || c.MaxConnections > 100 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be between 1 and 100")
	}

	if c.TaxRate < 0 || c.TaxRate > 100 {
		return fmt.Errorf("TAX_RATE must be between 0 and 100")
	}

	if c.EnableEmail && !c.DryRun {
		if c.SMTPHost == "" || c.SMTPUser == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP_HOST, SMTP_USER and SMTP_PASSWORD are required when email is enabled")
		}
	}

	if c.EnableS3 && c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when ENABLE_S3 is true")
	}

	if c.EnableStripe && c.StripeAPIKey == "" {
		return fmt.Errorf("STRIPE_API_KEY is required when ENABLE_STRIPE is true")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
