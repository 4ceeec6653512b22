package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret              string
	AppBaseURL             string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPass                 string
	DBName                 string
	RedisHost              string
	RedisPort              string
	RedisPassword          string
	RedisDB                int
	MinioHost              string
	MinioPort              string
	MinioUsername          string
	MinioPassword          string
	BucketName             string
	RabbitMQURL            string
	RabbitMQHost           string
	RabbitMQPort           string
	RabbitMQUser           string
	RabbitMQPass           string
	RabbitMQVhost          string
	RabbitMQPrefetch       int
	MagicLinkTTL           time.Duration
	ActivationTTL          time.Duration
	ViewerTokenTTL         time.Duration
	SignedURLExpiry        time.Duration
	EventWorkerConcurrency int
	EventRate              float64
	EventBurst             int
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads configuration from the environment.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	AppConfig = Config{
		JWTSecret:              getEnv("JWT_SECRET", "l=ax+b"),
		AppBaseURL:             getEnv("APP_BASE_URL", "http://localhost:8000"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBUser:                 getEnv("DB_USER", "root"),
		DBPass:                 getEnv("DB_PASS", "root"),
		DBName:                 getEnv("DB_NAME", "DocVault"),
		RedisHost:              getEnv("REDIS_HOST", "localhost"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                0,
		MinioHost:              getEnv("MINIO_HOST", "localhost"),
		MinioPort:              getEnv("MINIO_PORT", "9000"),
		MinioUsername:          getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:          getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:             getEnv("BUCKET_NAME", "docvault"),
		RabbitMQURL:            rabbitURL,
		RabbitMQHost:           rabbitHost,
		RabbitMQPort:           rabbitPort,
		RabbitMQUser:           rabbitUser,
		RabbitMQPass:           rabbitPass,
		RabbitMQVhost:          rabbitVhost,
		RabbitMQPrefetch:       getEnvInt("RABBITMQ_PREFETCH", 8),
		MagicLinkTTL:           getEnvDuration("MAGIC_LINK_TTL", 10*time.Minute),
		ActivationTTL:          getEnvDuration("ACTIVATION_TTL", 10*time.Minute),
		ViewerTokenTTL:         getEnvDuration("VIEWER_TOKEN_TTL", 15*time.Minute),
		SignedURLExpiry:        getEnvDuration("SIGNED_URL_EXPIRY", 24*time.Hour),
		EventWorkerConcurrency: getEnvInt("EVENT_WORKER_CONCURRENCY", 4),
		EventRate:              getEnvFloat("EVENT_RATE", 50),
		EventBurst:             getEnvInt("EVENT_BURST", 100),
	}
}
