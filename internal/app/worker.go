package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
	"github.com/GoArmGo/CafeApp/internal/usecase"
)

// runWorker запускает потребителя RabbitMQ и архивирует картинки кафе до отмены ctx
func runWorker(
	ctx context.Context,
	imageArchive usecase.ImageArchiveUseCase,
	consumer ports.CafeImageConsumer,
	logger *slog.Logger,
) error {
	if imageArchive == nil || consumer == nil {
		return errors.New("worker mode requires RabbitMQ and MinIO to be configured")
	}

	messageHandler := func(ctx context.Context, payload payloads.CafeImagePayload) error {
		logger.Info("archiving cafe image", "cafe_id", payload.CafeID, "image_url", payload.ImageURL)
		return imageArchive.ArchiveCafeImage(ctx, payload)
	}

	if err := consumer.StartConsumingCafeImages(ctx, messageHandler); err != nil {
		return fmt.Errorf("start RabbitMQ consumer: %w", err)
	}

	logger.Info("worker started, waiting for messages")
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}
