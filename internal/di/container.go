package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/GoArmGo/CafeApp/internal/adapter/imagefetch"
	"github.com/GoArmGo/CafeApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/CafeApp/internal/app"
	"github.com/GoArmGo/CafeApp/internal/config"
	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/database/client"
	"github.com/GoArmGo/CafeApp/internal/database/postgres"
	"github.com/GoArmGo/CafeApp/internal/database/storage"
	"github.com/GoArmGo/CafeApp/internal/handler"
	"github.com/GoArmGo/CafeApp/internal/logger"
	"github.com/GoArmGo/CafeApp/internal/rabbitmq"
	"github.com/GoArmGo/CafeApp/internal/session"
	"github.com/GoArmGo/CafeApp/internal/usecase"
)

// imageFetchTimeout — таймаут скачивания одной картинки воркером
const imageFetchTimeout = 30 * time.Second

// BuildApp инициализирует зависимости, нужные режиму mode, и возвращает готовый объект App.
func BuildApp(ctx context.Context, mode string) (_ *app.App, err error) {
	if !app.ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode: %s (use 'server', 'worker' or 'migrate')", mode)
	}

	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента
	dbClient, err := client.NewClient(cfg, logger.Component(slogger, "database"))
	if err != nil {
		return nil, err
	}

	// closers закрываются приложением при остановке;
	// если сборка упала на полпути, закрываем их и бд здесь
	var closers []io.Closer
	defer func() {
		if err == nil {
			return
		}
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
		_ = dbClient.Close()
	}()

	if mode == app.ModeMigrate {
		return app.NewApp(cfg, slogger, dbClient.DB, nil, nil, nil), nil
	}

	// 3. Инициализация хранилищ
	cityStorage := storage.NewCityStorage(dbClient.DB, logger.Component(slogger, "storage"))
	cafeStorage := storage.NewCafeStorage(dbClient.DB, logger.Component(slogger, "storage"))
	userStorage := storage.NewUserStorage(dbClient.DB, logger.Component(slogger, "storage"))

	// 4. Очередь архивирования картинок: в server необязательна, в worker обязательна
	var rabbitMQClient *rabbitmq.Client
	if cfg.ImageArchiveEnabled() {
		rabbitMQClient, err = rabbitmq.NewClient(cfg.RabbitMQ.RabbitMQURL, cfg.RabbitMQ.RabbitMQQueueName, logger.Component(slogger, "rabbitmq"))
		if err != nil {
			return nil, err
		}
		closers = append(closers, rabbitMQClient)
	} else {
		slogger.Warn("RABBITMQ_URL not set, cafe image archiving disabled")
	}

	if mode == app.ModeWorker {
		if rabbitMQClient == nil {
			return nil, fmt.Errorf("worker mode requires RABBITMQ_URL")
		}

		fileStorage, err := minio.NewMinioClient(ctx, minio.Options{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKeyID,
			SecretAccessKey: cfg.MinioSecretAccessKey,
			UseSSL:          cfg.MinioUseSSL,
			Bucket:          cfg.MinioBucketName,
			Region:          cfg.MinioRegion,
		}, logger.Component(slogger, "minio"))
		if err != nil {
			return nil, err
		}

		imageArchive := usecase.NewImageArchiveUseCase(
			imagefetch.NewClient(imageFetchTimeout),
			fileStorage,
			logger.Component(slogger, "image_archive"),
		)
		return app.NewApp(cfg, slogger, dbClient.DB, nil, imageArchive, rabbitMQClient, closers...), nil
	}

	// 5. Server: миграции, gorm для лайков, сессии в Redis
	if err := postgres.ApplyMigrations(dbClient.DB.DB, logger.Component(slogger, "migrations")); err != nil {
		return nil, err
	}

	gormDB, err := postgres.OpenGorm(dbClient.DB.DB)
	if err != nil {
		return nil, err
	}
	likeStorage := postgres.NewGormLikeStorage(gormDB, logger.Component(slogger, "storage"))

	redisClient, err := session.NewRedisClient(ctx, cfg.Redis.RedisURL)
	if err != nil {
		return nil, err
	}
	closers = append(closers, redisClient)
	sessionStore := session.NewRedisStore(redisClient, cfg.SessionTTL, logger.Component(slogger, "session"))

	// 6. Инициализация бизнес-логики (usecases)
	var publisher ports.CafeImagePublisher
	if rabbitMQClient != nil {
		publisher = rabbitMQClient
	}
	cafeUseCase := usecase.NewCafeUseCase(cafeStorage, cityStorage, publisher, logger.Component(slogger, "cafe"))
	userUseCase := usecase.NewUserUseCase(userStorage, logger.Component(slogger, "user"))
	likeUseCase := usecase.NewLikeUseCase(likeStorage, cafeStorage)

	// 7. HTTP-слой
	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	router := handler.NewRouter(handler.Dependencies{
		Cafes:    cafeUseCase,
		Users:    userUseCase,
		Likes:    likeUseCase,
		Sessions: sessionStore,
		Tokens:   session.NewTokenCodec(cfg.SessionSecret, cfg.SessionTTL),
		Renderer: renderer,
		Health:   dbClient,
		Cookies: handler.CookieConfig{
			Name:   handler.DefaultCookieName,
			Secure: cfg.CookieSecure,
			MaxAge: cfg.SessionTTL,
		},
		LoginLimiter: handler.NewIPRateLimiter(cfg.LoginRatePerMinute),
		Logger:       logger.Component(slogger, "http"),
	}, cfg.RequestTimeout)

	// 8. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, dbClient.DB, router, nil, nil, closers...)

	slogger.Info("all dependencies initialized", "mode", mode)
	return application, nil
}

