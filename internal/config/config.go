package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// MQTT Config, пустой брокер отключает MQTT
	MQTTBroker      string `env:"MQTT_BROKER"`
	MQTTClientID    string `env:"MQTT_CLIENT_ID" envDefault:"zone-proximity"`
	MQTTUsername    string `env:"MQTT_USERNAME"`
	MQTTPassword    string `env:"MQTT_PASSWORD"`
	MQTTQoS         byte   `env:"MQTT_QOS" envDefault:"1"`
	MQTTTopicPrefix string `env:"MQTT_TOPIC_PREFIX" envDefault:"proximity"`

	// RabbitMQ Config, пустой URL отключает публикацию
	RabbitMQURL string `env:"RABBITMQ_URL"`

	// InfluxDB Config, пустой URL отключает метрики
	InfluxURL    string `env:"INFLUX_URL"`
	InfluxToken  string `env:"INFLUX_TOKEN"`
	InfluxOrg    string `env:"INFLUX_ORG"`
	InfluxBucket string `env:"INFLUX_BUCKET" envDefault:"proximity"`

	// Размер очереди событий обновления
	EventBuffer int `env:"EVENT_BUFFER" envDefault:"64"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`

	// Путь к файлу настроек близости и сами настройки
	ProximityConfigPath string `env:"PROXIMITY_CONFIG" envDefault:"proximity.yaml"`
	Proximity           Proximity
}

// LoadConfig загружает конфигурацию из переменных окружения, .env файла и файла настроек близости
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:      getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:   getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:    getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		MQTTBroker:          os.Getenv("MQTT_BROKER"),
		MQTTClientID:        getEnv("MQTT_CLIENT_ID", "zone-proximity"),
		MQTTUsername:        os.Getenv("MQTT_USERNAME"),
		MQTTPassword:        os.Getenv("MQTT_PASSWORD"),
		MQTTQoS:             byte(getEnvAsInt("MQTT_QOS", 1)),
		MQTTTopicPrefix:     getEnv("MQTT_TOPIC_PREFIX", "proximity"),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
		InfluxURL:           os.Getenv("INFLUX_URL"),
		InfluxToken:         os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:           os.Getenv("INFLUX_ORG"),
		InfluxBucket:        getEnv("INFLUX_BUCKET", "proximity"),
		EventBuffer:         getEnvAsInt("EVENT_BUFFER", 64),
		ProximityConfigPath: getEnv("PROXIMITY_CONFIG", "proximity.yaml"),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.MQTTQoS > 2 {
		return nil, fmt.Errorf("MQTT_QOS must be 0, 1 or 2, got %d", cfg.MQTTQoS)
	}

	proximity, err := LoadProximity(cfg.ProximityConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Proximity = proximity

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
