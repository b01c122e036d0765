package domain

import "errors"

var (
	// ErrCafeNotFound возвращается, когда кафе с таким ID нет в бд
	ErrCafeNotFound = errors.New("cafe not found")
	// ErrCityNotFound возвращается для неизвестного кода города
	ErrCityNotFound = errors.New("city not found")
	// ErrUserNotFound возвращается, когда пользователя нет в бд
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken — нарушение уникальности username при сохранении
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials не раскрывает, что именно не совпало: логин или пароль
	ErrInvalidCredentials = errors.New("invalid credentials")
)
