package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverJSON  = "json"
	DriverMySQL = "mysql"

	defaultJWTSecret = "default_secret"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string `validate:"oneof=dev prod"`
	Port     string `validate:"required,numeric"`
	LogDir   string `validate:"required"`
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Backup   BackupConfig
	Gateway  GatewayConfig
	Media    MediaConfig
	Seed     SeedConfig
}

// DatabaseConfig holds storage configuration
type DatabaseConfig struct {
	Driver   string `validate:"oneof=json mysql"`
	Path     string `validate:"required_if=Driver json"`
	Host     string `validate:"required_if=Driver mysql"`
	Port     string `validate:"required_if=Driver mysql"`
	User     string `validate:"required_if=Driver mysql"`
	Password string
	DBName   string `validate:"required_if=Driver mysql"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string `validate:"required"`
	AccessTokenMins int    `validate:"min=1"`
}

// CookieConfig holds the access token cookie attributes
type CookieConfig struct {
	Secure   bool
	SameSite string `validate:"oneof=lax strict none Lax Strict None"`
	Domain   string
}

// BackupConfig schedules copies of the JSON document
type BackupConfig struct {
	Dir      string
	Schedule string
	Keep     int `validate:"min=0"`
}

// GatewayConfig holds the static server / reverse proxy settings
type GatewayConfig struct {
	StaticDir     string
	BackendURL    string `validate:"omitempty,url"`
	ProbeInterval string `validate:"required"`
}

// MediaConfig holds the upload directory for catalog images and videos
type MediaConfig struct {
	Dir         string `validate:"required"`
	MaxUploadMB int    `validate:"min=1"`
}

// SeedConfig holds the seed account passwords
type SeedConfig struct {
	AdminPassword     string `validate:"min=8"`
	ProcessorPassword string `validate:"min=8"`
}

var validate = validator.New()

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; deployments set real environment variables
	_ = godotenv.Load()

	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "8080"),
		LogDir:  getEnv("LOG_DIR", "logs"),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverJSON),
			Path:     getEnv("DATABASE_PATH", "data/database.json"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "roilux"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 60),
		},
		Cookie: CookieConfig{
			Secure:   getEnvBool("COOKIE_SECURE", appMode == "prod"),
			SameSite: getEnv("COOKIE_SAMESITE", "lax"),
			Domain:   getEnv("COOKIE_DOMAIN", ""),
		},
		Backup: BackupConfig{
			Dir:      getEnv("BACKUP_DIR", ""),
			Schedule: getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
			Keep:     getEnvInt("BACKUP_KEEP", 7),
		},
		Gateway: GatewayConfig{
			StaticDir:     getEnv("STATIC_DIR", "frontend/build"),
			BackendURL:    strings.TrimRight(getEnv("BACKEND_URL", ""), "/"),
			ProbeInterval: getEnv("PROBE_INTERVAL", "@every 15s"),
		},
		Media: MediaConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 50),
		},
		Seed: SeedConfig{
			AdminPassword:     getEnv("ADMIN_PASSWORD", "roilux2024"),
			ProcessorPassword: getEnv("PROCESSOR_PASSWORD", "processor123"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks field constraints and production requirements
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration %s: failed %q (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value()))
		}
		return err
	}

	if c.IsProd() && c.JWT.Secret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in prod mode")
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://roilux.com,https://www.roilux.com"
	}
	return origins
}
