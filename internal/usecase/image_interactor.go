package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
)

type imageArchiveUseCase struct {
	fetcher     ImageFetcher
	fileStorage FileStorage
	logger      *slog.Logger
}

// NewImageArchiveUseCase создает usecase воркера архивирования картинок
func NewImageArchiveUseCase(fetcher ImageFetcher, fileStorage FileStorage, logger *slog.Logger) ImageArchiveUseCase {
	return &imageArchiveUseCase{fetcher: fetcher, fileStorage: fileStorage, logger: logger}
}

// CafeImageKey — ключ объекта с картинкой кафе в хранилище
func CafeImageKey(cafeID int64) string {
	return fmt.Sprintf("cafes/%d/image", cafeID)
}

// ArchiveCafeImage скачивает картинку и кладёт её в хранилище.
// Записи в бд не меняются.
func (uc *imageArchiveUseCase) ArchiveCafeImage(ctx context.Context, payload payloads.CafeImagePayload) error {
	start := time.Now()

	body, contentType, err := uc.fetcher.Fetch(ctx, payload.ImageURL)
	if err != nil {
		return fmt.Errorf("usecase: fetch image for cafe %d: %w", payload.CafeID, err)
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	location, err := uc.fileStorage.UploadFile(ctx, CafeImageKey(payload.CafeID), body, contentType)
	if err != nil {
		return fmt.Errorf("usecase: upload image for cafe %d: %w", payload.CafeID, err)
	}

	uc.logger.Info("cafe image archived",
		"cafe_id", payload.CafeID,
		"location", location,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
