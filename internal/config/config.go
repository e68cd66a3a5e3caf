package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseDriver     string
	DatabaseURL        string
	HTTPAddr           string
	TelegramToken      string
	BaseAdminChatID    int64
	CORSAllowedOrigins []string
	LogLevel           logrus.Level
	SeedSampleData     bool
}

var instance *Config
var once sync.Once

// GetConfig возвращает конфиг приложения, загружая его один раз
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			// В serverless окружении .env отсутствует, переменные задаются платформой
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load читает конфиг из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseDriver = strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite))
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return nil, &InvalidValueError{Key: "DATABASE_DRIVER", Value: cfg.DatabaseDriver}
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "salary.db")
	if cfg.DatabaseURL == "" {
		return nil, &InvalidValueError{Key: "DATABASE_URL", Value: cfg.DatabaseURL}
	}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	cfg.BaseAdminChatID = getEnvAsInt("BASE_ADMIN_CHAT_ID", 0)
	cfg.CORSAllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	cfg.SeedSampleData = getEnvAsBool("SEED_SAMPLE_DATA", false)

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, &InvalidValueError{Key: "LOG_LEVEL", Value: getEnv("LOG_LEVEL", "")}
	}
	cfg.LogLevel = level

	return cfg, nil
}

// BotEnabled сообщает, настроен ли токен телеграм-бота
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return "invalid value for " + e.Key + ": " + strconv.Quote(e.Value)
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsSlice(name string, defaultVal []string) []string {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal
	}

	var result []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
