package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	ServerPort   string
	DatabaseDSN  string
	MaxOpenConns int
	ConnMaxIdle  time.Duration

	UploadDir   string
	PublicDir   string
	PageMode    string
	RuleProfile string
	BodyLimitMB int

	CorsAllowOrigins     string
	ExposeInternalErrors bool

	StorageDriver    string
	CloudinaryUrl    string
	CloudinaryFolder string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	RedisAddr     string
	RedisPassword string

	OtelEnabled  bool
	OtelEndpoint string

	LogFile string

	GmailUser        string
	GmailAppPassword string
	MailFrom         string
	MailFromName     string
	MailSubject      string
	PortalBaseURL    string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		Env:          getEnv("ENV", "dev"),
		ServerPort:   getEnv("SERVER_PORT", ":3002"),
		DatabaseDSN:  os.Getenv("DATABASE_DSN"),
		MaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 20),
		ConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second),

		UploadDir:   getEnv("UPLOAD_DIR", "Uploads"),
		PublicDir:   getEnv("PUBLIC_DIR", "public"),
		PageMode:    getEnv("PAGE_MODE", "form"),
		RuleProfile: getEnv("RULE_PROFILE", "strict"),
		BodyLimitMB: getInt("BODY_LIMIT_MB", 48),

		CorsAllowOrigins:     getEnv("CORS_ALLOW_ORIGINS", "*"),
		ExposeInternalErrors: getBool("EXPOSE_INTERNAL_ERRORS", false),

		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		CloudinaryUrl:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "onboarding/documents"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "employee.onboarded"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "onboarding-mailer"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OtelEnabled:  getBool("OTEL_ENABLED", false),
		OtelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		LogFile: os.Getenv("LOG_FILE"),

		GmailUser:        os.Getenv("GMAIL_USER"),
		GmailAppPassword: os.Getenv("GMAIL_APP_PASSWORD"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		MailFromName:     getEnv("MAIL_FROM_NAME", "HR Onboarding"),
		MailSubject:      getEnv("MAIL_SUBJECT", "Welcome aboard"),
		PortalBaseURL:    os.Getenv("PORTAL_BASE_URL"),
	}
}

func getEnv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func getInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getBool(name string, def bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
