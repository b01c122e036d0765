package usecase

import (
	"context"
	"fmt"

	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/domain"
)

type likeUseCase struct {
	likeStorage ports.LikeStorage
	cafeStorage ports.CafeStorage
}

func NewLikeUseCase(likeStorage ports.LikeStorage, cafeStorage ports.CafeStorage) LikeUseCase {
	return &likeUseCase{likeStorage: likeStorage, cafeStorage: cafeStorage}
}

func (uc *likeUseCase) Like(ctx context.Context, userID, cafeID int64) error {
	if err := uc.ensureCafe(ctx, cafeID); err != nil {
		return err
	}
	if err := uc.likeStorage.AddLike(ctx, userID, cafeID); err != nil {
		return fmt.Errorf("usecase: like cafe %d: %w", cafeID, err)
	}
	return nil
}

func (uc *likeUseCase) Unlike(ctx context.Context, userID, cafeID int64) error {
	if err := uc.ensureCafe(ctx, cafeID); err != nil {
		return err
	}
	if err := uc.likeStorage.RemoveLike(ctx, userID, cafeID); err != nil {
		return fmt.Errorf("usecase: unlike cafe %d: %w", cafeID, err)
	}
	return nil
}

func (uc *likeUseCase) IsLiked(ctx context.Context, userID, cafeID int64) (bool, error) {
	liked, err := uc.likeStorage.HasLike(ctx, userID, cafeID)
	if err != nil {
		return false, fmt.Errorf("usecase: check like: %w", err)
	}
	return liked, nil
}

func (uc *likeUseCase) LikedCafes(ctx context.Context, userID int64) ([]domain.Cafe, error) {
	cafes, err := uc.likeStorage.ListLikedCafes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: liked cafes: %w", err)
	}
	return cafes, nil
}

func (uc *likeUseCase) ensureCafe(ctx context.Context, cafeID int64) error {
	if _, err := uc.cafeStorage.GetCafeByID(ctx, cafeID); err != nil {
		return fmt.Errorf("usecase: cafe %d: %w", cafeID, err)
	}
	return nil
}
