package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
)

// cafeUseCase implements CafeUseCase
type cafeUseCase struct {
	cafeStorage ports.CafeStorage
	cityStorage ports.CityStorage
	publisher   ports.CafeImagePublisher // nil, если очередь не настроена
	logger      *slog.Logger
}

// NewCafeUseCase создает новый экземпляр CafeUseCase.
// publisher может быть nil: тогда картинки не архивируются.
func NewCafeUseCase(
	cafeStorage ports.CafeStorage,
	cityStorage ports.CityStorage,
	publisher ports.CafeImagePublisher,
	logger *slog.Logger,
) CafeUseCase {
	return &cafeUseCase{
		cafeStorage: cafeStorage,
		cityStorage: cityStorage,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *cafeUseCase) ListCafes(ctx context.Context) ([]domain.CafeDetails, error) {
	cafes, err := uc.cafeStorage.ListCafes(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: list cafes: %w", err)
	}
	return cafes, nil
}

func (uc *cafeUseCase) GetCafe(ctx context.Context, id int64) (*domain.CafeDetails, error) {
	cafe, err := uc.cafeStorage.GetCafeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get cafe %d: %w", id, err)
	}
	return cafe, nil
}

func (uc *cafeUseCase) CityChoices(ctx context.Context) ([]domain.CityChoice, error) {
	cities, err := uc.cityStorage.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: list cities: %w", err)
	}
	return domain.CityChoices(cities), nil
}

func (uc *cafeUseCase) AddCafe(ctx context.Context, in domain.CafeInput) (*domain.Cafe, error) {
	cafe := &domain.Cafe{}
	cafe.Apply(in)

	if err := uc.cafeStorage.CreateCafe(ctx, cafe); err != nil {
		return nil, fmt.Errorf("usecase: add cafe %q: %w", in.Name, err)
	}

	uc.logger.Info("cafe added", "cafe_id", cafe.ID, "name", cafe.Name)
	uc.requestImageArchive(ctx, cafe)
	return cafe, nil
}

func (uc *cafeUseCase) EditCafe(ctx context.Context, id int64, in domain.CafeInput) (*domain.Cafe, error) {
	current, err := uc.cafeStorage.GetCafeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: load cafe %d for edit: %w", id, err)
	}

	cafe := current.Cafe
	cafe.Apply(in)

	if err := uc.cafeStorage.UpdateCafe(ctx, &cafe); err != nil {
		return nil, fmt.Errorf("usecase: edit cafe %d: %w", id, err)
	}

	uc.logger.Info("cafe edited", "cafe_id", cafe.ID, "name", cafe.Name)
	if cafe.ImageURL != current.ImageURL {
		uc.requestImageArchive(ctx, &cafe)
	}
	return &cafe, nil
}

// requestImageArchive ставит задачу на копирование картинки.
// Ошибка публикации не отменяет уже сохранённое кафе, только логируется.
func (uc *cafeUseCase) requestImageArchive(ctx context.Context, cafe *domain.Cafe) {
	if uc.publisher == nil || !cafe.HasRemoteImage() {
		return
	}

	payload := payloads.CafeImagePayload{CafeID: cafe.ID, ImageURL: cafe.ImageURL}
	if err := uc.publisher.PublishCafeImage(ctx, payload); err != nil {
		uc.logger.Error("failed to publish cafe image task", "cafe_id", cafe.ID, "error", err)
	}
}
