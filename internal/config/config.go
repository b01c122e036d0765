package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	ServerPort    string `env:"SERVER_PORT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Сессии: подписанная cookie + запись в Redis
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieSecure bool          `env:"COOKIE_SECURE"`

	// сколько попыток входа/регистрации в минуту разрешено с одного IP
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE"`

	Redis struct {
		RedisURL string `env:"REDIS_URL,required"`
	}

	// RabbitMQ и MinIO необязательны для режима server:
	// без них архивирование картинок кафе просто отключено.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"cafe_image_queue"`
	}

	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	// значения по умолчанию для полей без envDefault
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.LoginRatePerMinute <= 0 {
		cfg.LoginRatePerMinute = 10
	}

	return &cfg, nil
}

// ImageArchiveEnabled сообщает, настроена ли очередь для архивирования картинок.
func (c *Config) ImageArchiveEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// MinioConfigured сообщает, заданы ли все параметры S3/MinIO.
func (c *Config) MinioConfigured() bool {
	return c.MinioEndpoint != "" &&
		c.MinioAccessKeyID != "" &&
		c.MinioSecretAccessKey != "" &&
		c.MinioBucketName != "" &&
		c.MinioRegion != ""
}
