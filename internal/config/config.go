package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	LogLevel  string
	LogPretty bool

	DatabaseURL string
	AutoMigrate bool

	RedisURL string

	JWTSecret string
	JWTExpiry time.Duration

	OrgEmailDomain string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	AttachmentMaxBytes     int64
	AttachmentMaxFiles     int
	AttachmentRequired     bool
	AttachmentAllowedTypes []string

	ComplaintDeleteRoles []string

	ReportCacheTTL time.Duration

	LoginRateRPS   float64
	LoginRateBurst int

	OutboxMaxAttempts int
	OutboxRetryDelay  time.Duration

	CORSOrigins string

	ResendAPIKey  string
	FromEmail     string
	EmailFromName string
	AppURL        string

	AdminEmail      string
	AdminPassword   string
	AdminName       string
	AdminRole       string
	AdminDepartment string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getBoolEnv("LOG_PRETTY", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		AutoMigrate: getBoolEnv("AUTO_MIGRATE", true),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getDurationEnv("JWT_EXPIRY", 24*time.Hour),

		OrgEmailDomain: getEnv("ORG_EMAIL_DOMAIN", "rnit.rw"),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "complaint-attachments"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", false),

		AttachmentMaxBytes: int64(getIntEnv("ATTACHMENT_MAX_BYTES", 10<<20)),
		AttachmentMaxFiles: getIntEnv("ATTACHMENT_MAX_FILES", 10),
		AttachmentRequired: getBoolEnv("ATTACHMENT_REQUIRED", false),
		AttachmentAllowedTypes: getListEnv("ATTACHMENT_ALLOWED_TYPES", []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
			"application/pdf",
			"text/plain",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}),

		ComplaintDeleteRoles: getListEnv("COMPLAINT_DELETE_ROLES", []string{"admin", "customer_relations_officer"}),

		ReportCacheTTL: getDurationEnv("REPORT_CACHE_TTL", time.Minute),

		LoginRateRPS:   getFloatEnv("LOGIN_RATE_RPS", 1),
		LoginRateBurst: getIntEnv("LOGIN_RATE_BURST", 5),

		OutboxMaxAttempts: getIntEnv("OUTBOX_MAX_ATTEMPTS", 3),
		OutboxRetryDelay:  getDurationEnv("OUTBOX_RETRY_DELAY", 5*time.Second),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		FromEmail:     getEnv("FROM_EMAIL", "noreply@example.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Customer Complaints System"),
		AppURL:        getEnv("APP_URL", "http://localhost:5173"),

		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		AdminName:       getEnv("ADMIN_NAME", "System Administrator"),
		AdminRole:       getEnv("ADMIN_ROLE", "admin"),
		AdminDepartment: getEnv("ADMIN_DEPARTMENT", "Administration"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv reads a comma separated list, dropping blank entries.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
