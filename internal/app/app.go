package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/CafeApp/internal/config"
	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/database/postgres"
	"github.com/GoArmGo/CafeApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

// Режимы запуска
const (
	ModeServer  = "server"
	ModeWorker  = "worker"
	ModeMigrate = "migrate"
)

// ValidMode сообщает, известен ли режим запуска.
func ValidMode(mode string) bool {
	switch mode {
	case ModeServer, ModeWorker, ModeMigrate:
		return true
	}
	return false
}

type App struct {
	Config        *config.Config
	logger        *slog.Logger
	db            *sqlx.DB
	router        http.Handler
	imageArchive  usecase.ImageArchiveUseCase
	imageConsumer ports.CafeImageConsumer
	closers       []io.Closer
}

// NewApp собирает приложение. router нужен режиму server,
// imageArchive и imageConsumer — режиму worker; остальное может быть nil.
// closers закрываются в Shutdown в обратном порядке.
func NewApp(cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	router http.Handler,
	imageArchive usecase.ImageArchiveUseCase,
	imageConsumer ports.CafeImageConsumer,
	closers ...io.Closer) *App {
	return &App{
		Config:        cfg,
		logger:        logger,
		db:            db,
		router:        router,
		imageArchive:  imageArchive,
		imageConsumer: imageConsumer,
		closers:       closers,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в заданном режиме и блокируется до SIGINT/SIGTERM
// (server, worker) или до окончания миграций (migrate).
func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		if err := a.Shutdown(); err != nil {
			a.logger.Error("shutdown finished with errors", "error", err)
		}
	}()

	a.logger.Info("running application", "mode", mode)

	switch mode {
	case ModeServer:
		return runServer(ctx, a.Config, a.router, a.logger)

	case ModeWorker:
		return runWorker(ctx, a.imageArchive, a.imageConsumer, a.logger)

	case ModeMigrate:
		return postgres.ApplyMigrations(a.db.DB, a.logger)

	default:
		return fmt.Errorf("unknown mode: %s (use 'server', 'worker' or 'migrate')", mode)
	}
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	a.logger.Info("application resources released")
	return errors.Join(errs...)
}
