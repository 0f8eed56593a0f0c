package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string

	// Export pipeline
	UseMemoryQueue    bool
	ExportQueueURL    string
	ExportMaxAttempts int
	ExportWorkerCount int
	ExportRetryDelay  time.Duration

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	GoogleSheetsSpreadsheetID   string
	GoogleSheetsCredentialsFile string

	// Staff alerts
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	LeadAlertEmails   []string

	AdminJWTSecret     string
	CORSAllowedOrigins []string
	ContactRateLimit   int
	ContactRateWindow  time.Duration
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		UseMemoryQueue:    getEnvAsBool("USE_MEMORY_QUEUE", true),
		ExportQueueURL:    getEnv("EXPORT_QUEUE_URL", ""),
		ExportMaxAttempts: getEnvAsInt("EXPORT_MAX_ATTEMPTS", 3),
		ExportWorkerCount: getEnvAsInt("EXPORT_WORKER_COUNT", 1),
		ExportRetryDelay:  getEnvAsDuration("EXPORT_RETRY_DELAY", 15*time.Second),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		GoogleSheetsSpreadsheetID:   getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		GoogleSheetsCredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Asbestos Lead Desk"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		LeadAlertEmails:   getEnvAsList("LEAD_ALERT_EMAIL"),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		ContactRateLimit:   getEnvAsInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow:  getEnvAsDuration("CONTACT_RATE_WINDOW", 10*time.Minute),
	}
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// Validate rejects settings the API cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if !c.UseMemoryQueue && c.ExportQueueURL == "" {
		errs = append(errs, errors.New("EXPORT_QUEUE_URL is required when USE_MEMORY_QUEUE=false"))
	}
	if c.ExportMaxAttempts < 1 {
		errs = append(errs, errors.New("EXPORT_MAX_ATTEMPTS must be at least 1"))
	}
	if c.ContactRateLimit < 1 || c.ContactRateWindow <= 0 {
		errs = append(errs, errors.New("CONTACT_RATE_LIMIT and CONTACT_RATE_WINDOW must be positive"))
	}
	if c.IsProduction() {
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required in production"))
		}
		if c.AdminJWTSecret == "" {
			errs = append(errs, errors.New("ADMIN_JWT_SECRET is required in production"))
		}
	}
	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
