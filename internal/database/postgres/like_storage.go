package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLikeStorage реализует интерфейс ports.LikeStorage с использованием GORM
type GormLikeStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormLikeStorage создает новый экземпляр GormLikeStorage
func NewGormLikeStorage(db *gorm.DB, logger *slog.Logger) *GormLikeStorage {
	return &GormLikeStorage{db: db, logger: logger}
}

// AddLike сохраняет лайк; повторный лайк той же пары игнорируется
func (s *GormLikeStorage) AddLike(ctx context.Context, userID, cafeID int64) error {
	start := time.Now()

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.Like{UserID: userID, CafeID: cafeID})
	if result.Error != nil {
		s.logger.Error("failed to add like", "user_id", userID, "cafe_id", cafeID, "error", result.Error)
		return fmt.Errorf("add like: %w", result.Error)
	}

	s.logger.Info("like saved",
		"user_id", userID,
		"cafe_id", cafeID,
		"created", result.RowsAffected > 0,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RemoveLike удаляет лайк; отсутствие пары не считается ошибкой
func (s *GormLikeStorage) RemoveLike(ctx context.Context, userID, cafeID int64) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Delete(&domain.Like{})
	if result.Error != nil {
		s.logger.Error("failed to remove like", "user_id", userID, "cafe_id", cafeID, "error", result.Error)
		return fmt.Errorf("remove like: %w", result.Error)
	}

	s.logger.Info("like removed", "user_id", userID, "cafe_id", cafeID, "deleted", result.RowsAffected)
	return nil
}

// HasLike проверяет, лайкнул ли пользователь кафе
func (s *GormLikeStorage) HasLike(ctx context.Context, userID, cafeID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("user_id = ? AND cafe_id = ?", userID, cafeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return count > 0, nil
}

// ListLikedCafes возвращает понравившиеся пользователю кафе, по названию
func (s *GormLikeStorage) ListLikedCafes(ctx context.Context, userID int64) ([]domain.Cafe, error) {
	var cafes []domain.Cafe
	err := s.db.WithContext(ctx).
		Model(&domain.Cafe{}).
		Joins("JOIN likes ON likes.cafe_id = cafes.id").
		Where("likes.user_id = ?", userID).
		Order("cafes.name ASC").
		Find(&cafes).Error
	if err != nil {
		s.logger.Error("failed to list liked cafes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list liked cafes: %w", err)
	}
	return cafes, nil
}
