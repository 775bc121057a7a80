package config

import (
	"os"
	"strconv"
	"time"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration: token lifetimes and signing material.
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// SMTP configuration for outbound password-reset mail. Empty Host
// disables real delivery (reset links are logged instead).
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Seed admin account, provisioned at startup when absent.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Login rate limiting.
type LoginRateConfig struct {
	PerMinute int
	Burst     int
}

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Auth        AuthConfig
	SMTP        SMTPConfig
	Admin       AdminConfig
	LoginRate   LoginRateConfig
	FrontendURL string
}

// Default configuration values
const (
	DefaultServerPort     = "5000"
	DefaultServerHost     = ""
	DefaultMongoURI       = "mongodb://localhost:27017/leadsdesk"
	DefaultMongoDB        = "leadsdesk"
	DefaultSessionTTLDays = 30
	DefaultResetTTLMin    = 60
	DefaultFrontendURL    = "http://localhost:3000"
	DefaultLoginPerMinute = 10
	DefaultLoginBurst     = 5
)

// New returns a new Config with values from the environment.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_DAYS", DefaultSessionTTLDays)) * 24 * time.Hour,
			ResetTTL:   time.Duration(getEnvInt("RESET_TTL_MINUTES", DefaultResetTTLMin)) * time.Minute,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@leadsdesk.local"),
		},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		LoginRate: LoginRateConfig{
			PerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", DefaultLoginPerMinute),
			Burst:     getEnvInt("LOGIN_RATE_BURST", DefaultLoginBurst),
		},
		FrontendURL: getEnv("FRONTEND_URL", DefaultFrontendURL),
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address returns the SMTP dial address.
func (c *SMTPConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
