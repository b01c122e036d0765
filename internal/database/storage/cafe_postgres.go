package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// foreignKeyViolation — SQLSTATE нарушения внешнего ключа (city_code без города)
const foreignKeyViolation = "23503"

const selectCafeDetails = `
	SELECT c.id, c.name, c.description, c.url, c.address, c.city_code, c.image_url,
	       ci.name AS city_name, ci.state AS city_state
	FROM cafes c
	JOIN cities ci ON ci.code = c.city_code
`

// CafeStorage хранит кафе в PostgreSQL
type CafeStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCafeStorage(db *sqlx.DB, logger *slog.Logger) *CafeStorage {
	return &CafeStorage{db: db, logger: logger}
}

// ListCafes получает все кафе вместе с городом, отсортированные по названию
func (s *CafeStorage) ListCafes(ctx context.Context) ([]domain.CafeDetails, error) {
	start := time.Now()

	cafes := []domain.CafeDetails{}
	if err := s.db.SelectContext(ctx, &cafes, selectCafeDetails+` ORDER BY c.name ASC, c.id ASC`); err != nil {
		s.logger.Error("failed to list cafes", "error", err)
		return nil, fmt.Errorf("list cafes: %w", err)
	}

	s.logger.Info("listed cafes successfully",
		"count", len(cafes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return cafes, nil
}

// GetCafeByID получает кафе по ID
func (s *CafeStorage) GetCafeByID(ctx context.Context, id int64) (*domain.CafeDetails, error) {
	start := time.Now()

	var cafe domain.CafeDetails
	err := s.db.GetContext(ctx, &cafe, selectCafeDetails+` WHERE c.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("cafe not found by id", "id", id)
			return nil, domain.ErrCafeNotFound
		}
		s.logger.Error("failed to get cafe by id", "id", id, "error", err)
		return nil, fmt.Errorf("get cafe %d: %w", id, err)
	}

	s.logger.Info("cafe retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &cafe, nil
}

// CreateCafe сохраняет новое кафе и записывает выданный ID в cafe.ID
func (s *CafeStorage) CreateCafe(ctx context.Context, cafe *domain.Cafe) error {
	start := time.Now()

	query := `
	INSERT INTO cafes (name, description, url, address, city_code, image_url)
	VALUES (:name, :description, :url, :address, :city_code, :image_url)
	RETURNING id
	`

	rows, err := s.db.NamedQueryContext(ctx, query, cafe)
	if err != nil {
		s.logger.Error("failed to save cafe", "name", cafe.Name, "error", err)
		return fmt.Errorf("insert cafe: %w", cityError(err))
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&cafe.ID); err != nil {
			return fmt.Errorf("scan cafe id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("failed to save cafe", "name", cafe.Name, "error", err)
		return fmt.Errorf("insert cafe: %w", cityError(err))
	}

	s.logger.Info("cafe saved successfully",
		"id", cafe.ID,
		"name", cafe.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateCafe перезаписывает все редактируемые поля кафе
func (s *CafeStorage) UpdateCafe(ctx context.Context, cafe *domain.Cafe) error {
	start := time.Now()

	query := `
	UPDATE cafes
	SET name = :name, description = :description, url = :url,
	    address = :address, city_code = :city_code, image_url = :image_url
	WHERE id = :id
	`

	res, err := s.db.NamedExecContext(ctx, query, cafe)
	if err != nil {
		s.logger.Error("failed to update cafe", "id", cafe.ID, "error", err)
		return fmt.Errorf("update cafe %d: %w", cafe.ID, cityError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cafe %d: %w", cafe.ID, err)
	}
	if affected == 0 {
		return domain.ErrCafeNotFound
	}

	s.logger.Info("cafe updated successfully",
		"id", cafe.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// cityError переводит нарушение внешнего ключа на cities в domain.ErrCityNotFound.
func cityError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return domain.ErrCityNotFound
	}
	return err
}
