package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Notify   NotifyConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NotifyConfig configures the outbound email and SMS providers. Provider
// selection is per message, so every configured provider's credentials are
// loaded up front.
type NotifyConfig struct {
	Email EmailConfig
	SMS   SMSConfig
}

type EmailConfig struct {
	From           string
	SendGridAPIKey string
	SendGridURL    string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	SESRegion      string
	SESAccessKey   string
	SESSecretKey   string
}

type SMSConfig struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	TwilioURL        string
	DialogAPIKey     string
	DialogMask       string
	DialogURL        string
}

// SeedConfig controls optional startup seeding of fake customer documents.
type SeedConfig struct {
	Customers int
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "crm_user"),
			Password:        getEnv("DB_PASSWORD", "crm_password"),
			Name:            getEnv("DB_NAME", "crm_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Notify: NotifyConfig{
			Email: EmailConfig{
				From:           getEnv("EMAIL_FROM", "noreply@custopro.lk"),
				SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
				SendGridURL:    getEnv("SENDGRID_URL", "https://api.sendgrid.com/v3/mail/send"),
				SMTPHost:       getEnv("SMTP_HOST", "localhost"),
				SMTPPort:       getEnv("SMTP_PORT", "587"),
				SMTPUser:       os.Getenv("SMTP_USER"),
				SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
				SESRegion:      getEnv("SES_REGION", "us-east-1"),
				SESAccessKey:   os.Getenv("SES_ACCESS_KEY"),
				SESSecretKey:   os.Getenv("SES_SECRET_KEY"),
			},
			SMS: SMSConfig{
				TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
				TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
				TwilioFrom:       os.Getenv("TWILIO_FROM"),
				TwilioURL:        getEnv("TWILIO_URL", "https://api.twilio.com"),
				DialogAPIKey:     os.Getenv("DIALOG_API_KEY"),
				DialogMask:       getEnv("DIALOG_MASK", "CustoPro"),
				DialogURL:        getEnv("DIALOG_URL", "https://sms.dialog.lk/api/v1/send"),
			},
		},
		Seed: SeedConfig{
			Customers: getIntEnv("SEED_CUSTOMERS", 0),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	return config
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			log.Println("WARNING: CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*' (all origins). Consider setting specific origins for security.")
		} else {
			log.Println("INFO: CORS_ALLOW_ORIGINS not set, defaulting to '*' (all origins)")
		}
		return []string{"*"}
	}

	// Split by comma and trim whitespace
	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	log.Printf("CORS allowed origins configured: %v", origins)
	return origins
}
