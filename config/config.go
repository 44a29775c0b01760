package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTrustedProxies the site calls the API over loopback
var DefaultTrustedProxies = []string{"127.0.0.1", "::1"}

// Config application configuration
type Config struct {
	APIPort   int
	LogLevel  string
	LogFile   LogFileConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Site      SiteConfig
	CacheTTL  time.Duration
	RateLimit RateLimitConfig
	// TrustedProxies peers whose X-Forwarded-For is believed, loopback when empty
	TrustedProxies []string
}

// DatabaseConfig MySQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogFileConfig rotating log file settings
type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// AdminConfig bootstrap administrator, created on startup when missing
type AdminConfig struct {
	Username string
	Password string
}

// SiteConfig settings of the server-rendered pages
type SiteConfig struct {
	Enabled       bool
	APIBaseURL    string
	SecureCookies bool
	ClientTimeout time.Duration
}

// RateLimitConfig public submission limits
type RateLimitConfig struct {
	SubmitPerMinute int
}

// Load reads the configuration from the environment, using a .env file when one exists
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	apiPort := intEnv("API_PORT", 8080)

	siteAPIBase := os.Getenv("SITE_API_BASE_URL")
	if siteAPIBase == "" {
		siteAPIBase = fmt.Sprintf("http://127.0.0.1:%d/api/v1", apiPort)
	}

	return &Config{
		APIPort:  apiPort,
		LogLevel: os.Getenv("LOG_LEVEL"),
		LogFile: LogFileConfig{
			Enabled:    boolEnv("LOG_FILE_ENABLED", false),
			Path:       stringEnv("LOG_FILE_PATH", "logs/dstclan.log"),
			MaxSize:    intEnv("LOG_FILE_MAX_SIZE", 100),
			MaxBackups: intEnv("LOG_FILE_MAX_BACKUPS", 7),
			MaxAge:     intEnv("LOG_FILE_MAX_AGE", 30),
			Compress:   boolEnv("LOG_FILE_COMPRESS", false),
		},
		Database: DatabaseConfig{
			Host:     stringEnv("DB_HOST", "127.0.0.1"),
			Port:     intEnv("DB_PORT", 3306),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   stringEnv("DB_NAME", "dstclan"),
		},
		Redis: RedisConfig{
			Host:     stringEnv("REDIS_HOST", "127.0.0.1"),
			Port:     intEnv("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       intEnv("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Site: SiteConfig{
			Enabled:       boolEnv("SITE_ENABLED", true),
			APIBaseURL:    siteAPIBase,
			SecureCookies: boolEnv("SITE_SECURE_COOKIES", false),
			ClientTimeout: durationEnv("CLIENT_TIMEOUT", 10*time.Second),
		},
		CacheTTL: durationEnv("CACHE_TTL", 5*time.Minute),
		RateLimit: RateLimitConfig{
			SubmitPerMinute: intEnv("SUBMIT_RATE_LIMIT", 5),
		},
		TrustedProxies: listEnv("TRUSTED_PROXIES", DefaultTrustedProxies),
	}, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func listEnv(key string, def []string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func boolEnv(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
