package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	TransferTimeout         time.Duration
	TransferIdleTimeout     time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	JWTSecret               string
	JWTAccessTTL            time.Duration
	CORSOrigins             []string
	RateLimitRPM            int
	AuthRateLimitRPM        int
	PhotoRoot               string
	MaxUploadSize           int64
	ThumbnailSize           int
	DefaultAdminPassword    string
	LogLevel                string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		TransferTimeout:         getDuration("TRANSFER_TIMEOUT", 2*time.Minute),
		TransferIdleTimeout:     getDuration("TRANSFER_IDLE_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAccessTTL:            getDuration("JWT_ACCESS_TTL", 8*time.Hour),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		PhotoRoot:               getEnv("PHOTO_ROOT", "./state/photos"),
		MaxUploadSize:           getInt64("MAX_UPLOAD_SIZE", 5<<20),
		ThumbnailSize:           getInt("THUMBNAIL_SIZE", 256),
		DefaultAdminPassword:    getEnv("DEFAULT_ADMIN_PASSWORD", "Admin@123"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}

	if strings.TrimSpace(c.PhotoRoot) == "" {
		return fmt.Errorf("PHOTO_ROOT cannot be empty")
	}

	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	if c.ThumbnailSize <= 0 {
		return fmt.Errorf("THUMBNAIL_SIZE must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.TransferTimeout <= 0 || c.TransferIdleTimeout <= 0 {
		return fmt.Errorf("TRANSFER_TIMEOUT and TRANSFER_IDLE_TIMEOUT must be positive")
	}

	return nil
}

// Client configures the hrmsctl command line front-end.
type Client struct {
	APIURL         string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	TokenFile      string
	LogLevel       string
}

func LoadClient() (*Client, error) {
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	cfg := &Client{
		APIURL:         strings.TrimRight(getEnv("HRMS_API_URL", "http://localhost:8080/api/v1"), "/"),
		RequestTimeout: getDuration("CLIENT_REQUEST_TIMEOUT", 15*time.Second),
		RateLimitRPS:   getFloat("CLIENT_RATE_LIMIT_RPS", 5),
		TokenFile:      getEnv("HRMS_TOKEN_FILE", filepath.Join(home, ".hrms", "session.json")),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Client) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("HRMS_API_URL cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("CLIENT_REQUEST_TIMEOUT must be positive")
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("CLIENT_RATE_LIMIT_RPS must be positive")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
