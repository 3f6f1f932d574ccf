package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"school-store/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port    string
	DB      DB
	Redis   Redis
	Session Session
	Admin   Admin
	Payment Payment
}

type DB struct {
	database.Config
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	TTL time.Duration
}

type Admin struct {
	Username     string
	PasswordHash string // bcrypt-хэш, не plaintext
}

type Payment struct {
	// Базовый URL внешнего платёжного редиректа; пустой — редирект на страницу заказа
	BaseURL string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", log),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		Session: Session{
			TTL: parseDurationWithDays(getEnv("SESSION_TTL", log)),
		},
		Admin: Admin{
			Username:     getEnv("ADMIN_USER", log),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", log),
		},
		Payment: Payment{
			BaseURL: os.Getenv("PAYMENT_BASE_URL"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := time.ParseDuration(daysStr + "h")
		if err != nil {
			log.Printf("Ошибка парсинга TTL: %v", err)
			return 0
		}
		return time.Duration(24) * days
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
