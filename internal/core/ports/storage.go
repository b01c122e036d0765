package ports

import (
	"context"

	"github.com/GoArmGo/CafeApp/internal/domain"
)

// CityStorage определяет методы для чтения справочника городов
type CityStorage interface {
	ListCities(ctx context.Context) ([]domain.City, error)
}

// CafeStorage определяет методы для взаимодействия с хранилищем кафе
type CafeStorage interface {
	// ListCafes возвращает все кафе, отсортированные по названию
	ListCafes(ctx context.Context) ([]domain.CafeDetails, error)
	// GetCafeByID возвращает domain.ErrCafeNotFound, если кафе нет
	GetCafeByID(ctx context.Context, id int64) (*domain.CafeDetails, error)
	CreateCafe(ctx context.Context, cafe *domain.Cafe) error
	UpdateCafe(ctx context.Context, cafe *domain.Cafe) error
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser возвращает domain.ErrUsernameTaken при конфликте username
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// LikeStorage определяет методы для работы со связью пользователь—кафе
type LikeStorage interface {
	AddLike(ctx context.Context, userID, cafeID int64) error
	RemoveLike(ctx context.Context, userID, cafeID int64) error
	HasLike(ctx context.Context, userID, cafeID int64) (bool, error)
	ListLikedCafes(ctx context.Context, userID int64) ([]domain.Cafe, error)
}
