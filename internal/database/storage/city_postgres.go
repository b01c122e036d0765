package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/jmoiron/sqlx"
)

// CityStorage читает справочник городов
type CityStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCityStorage(db *sqlx.DB, logger *slog.Logger) *CityStorage {
	return &CityStorage{db: db, logger: logger}
}

// ListCities возвращает все города по названию
func (s *CityStorage) ListCities(ctx context.Context) ([]domain.City, error) {
	cities := []domain.City{}
	if err := s.db.SelectContext(ctx, &cities, `SELECT code, name, state FROM cities ORDER BY name ASC`); err != nil {
		s.logger.Error("failed to list cities", "error", err)
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}
