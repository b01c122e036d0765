package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CafeApp/internal/core/ports"
	"github.com/GoArmGo/CafeApp/internal/domain"
)

type userUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

func NewUserUseCase(userStorage ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{userStorage: userStorage, logger: logger}
}

func (uc *userUseCase) SignUp(ctx context.Context, params domain.RegisterParams) (*domain.User, error) {
	user, err := domain.RegisterUser(params)
	if err != nil {
		return nil, fmt.Errorf("usecase: register user: %w", err)
	}

	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("usecase: save user: %w", err)
	}

	uc.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (uc *userUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		domain.CompareDummyPassword(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("usecase: authenticate: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get user %d: %w", id, err)
	}
	return user, nil
}

func (uc *userUseCase) UpdateProfile(ctx context.Context, id int64, in domain.ProfileInput) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: load user %d: %w", id, err)
	}

	user.ApplyProfile(in)
	if err := uc.userStorage.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: update user %d: %w", id, err)
	}

	uc.logger.Info("profile edited", "user_id", id)
	return user, nil
}
