package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	MinIO    MinIOConfig
	Media    MediaConfig
	Contact  ContactConfig
	Progress ProgressConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigins []string

	// TrustedProxies: IP/CIDR của reverse proxy, rỗng = không tin header nào
	TrustedProxies []string
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	SSLMode           string
	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	ConnectTimeout    time.Duration
	AutoMigrate       bool
	MigrationsPath    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// AuthConfig - identity provider ký access token bằng HS256,
// backend chỉ verify token và map email → profile
type AuthConfig struct {
	JWTSecret   string
	Issuer      string   // optional, rỗng = không check "iss"
	AdminEmails []string // bootstrap admin: profile tạo lần đầu với email này có role admin
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // portfolio
	UseSSL    bool   // false for local
	PublicURL string // base URL trả về cho client, rỗng = http://<endpoint>/<bucket>
}

type MediaConfig struct {
	MaxBytes int64
}

type ContactConfig struct {
	RateLimit  int           // số message tối đa mỗi IP trong một window
	RateWindow time.Duration // độ dài window
}

type ProgressConfig struct {
	TTL time.Duration
}

type WorkerConfig struct {
	Concurrency  int
	HealthPort   string
	BackfillCron string // rỗng = queue.DefaultBackfillCron
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Portfolio API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),

			TrustedProxies: getEnvList("TRUSTED_PROXIES", nil),
		},
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Database:          getEnv("DB_NAME", "portfolio"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          getEnvInt("DB_MAX_CONNS", 25),
			MinConns:          getEnvInt("DB_MIN_CONNS", 5),
			MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
			HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:        getEnvDuration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
			AutoMigrate:       getEnvBool("DB_AUTO_MIGRATE", false),
			MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:      getEnv("JWT_ISSUER", ""),
			AdminEmails: getEnvList("ADMIN_EMAILS", nil),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "portfolio"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Media: MediaConfig{
			MaxBytes: int64(getEnvInt("MEDIA_MAX_BYTES", 20*1024*1024)), // 20MB
		},
		Contact: ContactConfig{
			RateLimit:  getEnvInt("CONTACT_RATE_LIMIT", 5),
			RateWindow: getEnvDuration("CONTACT_RATE_WINDOW", time.Hour),
		},
		Progress: ProgressConfig{
			TTL: getEnvDuration("PROGRESS_TTL", 180*24*time.Hour), // 180 days
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvInt("WORKER_CONCURRENCY", 10),
			HealthPort:   getEnv("WORKER_HEALTH_PORT", "9999"),
			BackfillCron: getEnv("WORKER_BACKFILL_CRON", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Media.MaxBytes <= 0 {
		return fmt.Errorf("MEDIA_MAX_BYTES must be positive")
	}
	if c.Contact.RateLimit < 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must not be negative")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.Auth.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if len(c.Auth.AdminEmails) == 0 {
			fmt.Println("WARNING: ADMIN_EMAILS not set - nobody can reach the admin API until a role is granted via cmsctl")
		}
	}

	return nil
}

// IsAdminEmail - so sánh không phân biệt hoa thường
func (a AuthConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range a.AdminEmails {
		if strings.ToLower(admin) == email {
			return true
		}
	}
	return false
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList đọc list phân cách bằng dấu phẩy, bỏ phần tử rỗng
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
