package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"staydesk/constants"

	"github.com/joho/godotenv"
)

// Config chứa toàn bộ cấu hình đọc từ môi trường
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DB DBConfig

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	InventoryWindowDays   int
	AvailabilityCacheTTL  time.Duration
	WebhookSecret         string
	PublicBaseURL         string
	NotificationWorkers   int
	NotificationQueueSize int

	CronBackfill      string
	CronPreArrival    string
	CronReviewRequest string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AppConfig được gán bởi InitApp
var AppConfig *Config

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load nạp .env (nếu có) rồi đọc cấu hình với giá trị mặc định
func Load() *Config {
	LoadEnv()

	return &Config{
		Env:      getEnv("ENV", "dev"),
		Port:     getEnv("PORT", "8083"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "staydesk"),
			Password:        getEnv("DB_PASSWORD", "staydesk"),
			Name:            getEnv("DB_NAME", "staydesk"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		JWTTTL:    getEnvDuration("JWT_TTL", 12*time.Hour),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "StayDesk <hello@staydesk.local>"),

		InventoryWindowDays:   getEnvInt("INVENTORY_WINDOW_DAYS", constants.DefaultInventoryWindowDays),
		AvailabilityCacheTTL:  getEnvDuration("AVAILABILITY_CACHE_TTL", time.Minute),
		WebhookSecret:         os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		PublicBaseURL:         getEnv("PUBLIC_BASE_URL", "http://localhost:8083"),
		NotificationWorkers:   getEnvInt("NOTIFICATION_WORKERS", 2),
		NotificationQueueSize: getEnvInt("NOTIFICATION_QUEUE_SIZE", 256),

		CronBackfill:      getEnv("CRON_BACKFILL", "0 2 * * *"),
		CronPreArrival:    getEnv("CRON_PRE_ARRIVAL", "0 9 * * *"),
		CronReviewRequest: getEnv("CRON_REVIEW_REQUEST", "0 10 * * *"),

		BootstrapAdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
