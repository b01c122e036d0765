package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GoArmGo/CafeApp/internal/di"
)

func main() {

	mode := flag.String("mode", "server", "Режим запуска приложения: server, worker или migrate")
	flag.Parse()

	// bootstrap-логгер нужен только до того, как di соберёт основной
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	ctx := context.Background()

	app, err := di.BuildApp(ctx, *mode)
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	bootstrapLogger.Info("application initialized successfully")

	slog := app.LoggerIns()
	slog.Info("application using main logger")

	if err := app.Run(ctx, *mode); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("application stopped gracefully")
}
