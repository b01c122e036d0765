package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/messaging/payloads"
)

// CafeUseCase определяет бизнес-логику справочника кафе
type CafeUseCase interface {
	// ListCafes возвращает все кафе по алфавиту
	ListCafes(ctx context.Context) ([]domain.CafeDetails, error)

	// GetCafe возвращает кафе с городом или domain.ErrCafeNotFound
	GetCafe(ctx context.Context, id int64) (*domain.CafeDetails, error)

	// CityChoices возвращает актуальный список городов для формы
	CityChoices(ctx context.Context) ([]domain.CityChoice, error)

	// AddCafe создаёт кафе; пустая картинка заменяется заглушкой
	AddCafe(ctx context.Context, in domain.CafeInput) (*domain.Cafe, error)

	// EditCafe перезаписывает все редактируемые поля кафе
	EditCafe(ctx context.Context, id int64, in domain.CafeInput) (*domain.Cafe, error)
}

// UserUseCase определяет регистрацию, вход и профиль
type UserUseCase interface {
	// SignUp регистрирует и сохраняет пользователя.
	// Занятый username — domain.ErrUsernameTaken.
	SignUp(ctx context.Context, params domain.RegisterParams) (*domain.User, error)

	// Authenticate возвращает пользователя или domain.ErrInvalidCredentials,
	// не различая неизвестный username и неверный пароль
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	GetUser(ctx context.Context, id int64) (*domain.User, error)

	UpdateProfile(ctx context.Context, id int64, in domain.ProfileInput) (*domain.User, error)
}

// LikeUseCase — лайки кафе пользователями
type LikeUseCase interface {
	Like(ctx context.Context, userID, cafeID int64) error
	Unlike(ctx context.Context, userID, cafeID int64) error
	IsLiked(ctx context.Context, userID, cafeID int64) (bool, error)
	LikedCafes(ctx context.Context, userID int64) ([]domain.Cafe, error)
}

// ImageArchiveUseCase копирует внешние картинки кафе в объектное хранилище
type ImageArchiveUseCase interface {
	ArchiveCafeImage(ctx context.Context, payload payloads.CafeImagePayload) error
}

// ImageFetcher скачивает картинку по внешнему URL
type ImageFetcher interface {
	// Fetch возвращает тело ответа и его Content-Type; тело закрывает вызывающий
	Fetch(ctx context.Context, imageURL string) (io.ReadCloser, string, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}
