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

// uniqueViolation — SQLSTATE нарушения уникального ограничения
const uniqueViolation = "23505"

const selectUser = `
	SELECT id, username, admin, email, first_name, last_name, description,
	       image_url, password_hash, created_at, updated_at
	FROM users
`

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя.
// Занятый username возвращается как domain.ErrUsernameTaken.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	query := `
	INSERT INTO users (username, admin, email, first_name, last_name, description, image_url, password_hash, created_at, updated_at)
	VALUES (:username, :admin, :email, :first_name, :last_name, :description, :image_url, :password_hash, :created_at, :updated_at)
	RETURNING id
	`

	rows, err := s.db.NamedQueryContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("username already taken", "username", user.Username)
			return domain.ErrUsernameTaken
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&user.ID); err != nil {
			return fmt.Errorf("scan user id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"username", user.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByID получает пользователя по ID
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

// GetUserByUsername ищет пользователя по точному совпадению username
func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, selectUser+` WHERE username = $1`, username)
}

func (s *UserStorage) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user", "key", arg, "error", err)
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// UpdateUser сохраняет поля профиля
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	query := `
	UPDATE users
	SET email = :email, first_name = :first_name, last_name = :last_name,
	    description = :description, image_url = :image_url, updated_at = :updated_at
	WHERE id = :id
	`

	res, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	s.logger.Info("user updated successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
