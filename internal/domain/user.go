// internal/domain/user.go
package domain

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultUserImageURL — аватар по умолчанию
const DefaultUserImageURL = "/static/images/default-pic.png"

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Пароль хранится только в виде bcrypt-хеша.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Admin        bool      `json:"admin" db:"admin"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Description  string    `json:"description" db:"description"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullName возвращает "FIRSTNAME LASTNAME".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CheckPassword сверяет пароль с сохранённым хешем.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RegisterParams — данные для регистрации нового пользователя
type RegisterParams struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Description string
	Password    string
	Admin       bool
	ImageURL    string
}

// RegisterUser хеширует пароль и возвращает новую, ещё не сохранённую запись User.
// Сохранение и обработка конфликта username — на вызывающей стороне.
func RegisterUser(p RegisterParams) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	imageURL := p.ImageURL
	if imageURL == "" {
		imageURL = DefaultUserImageURL
	}

	now := time.Now().UTC()
	return &User{
		Username:     p.Username,
		Admin:        p.Admin,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Description:  p.Description,
		ImageURL:     imageURL,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ProfileInput — проверенные данные формы редактирования профиля
type ProfileInput struct {
	FirstName   string
	LastName    string
	Description string
	Email       string
	ImageURL    string
}

// ApplyProfile перезаписывает редактируемые поля профиля.
func (u *User) ApplyProfile(in ProfileInput) {
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Description = in.Description
	u.Email = in.Email
	u.ImageURL = in.ImageURL
	if u.ImageURL == "" {
		u.ImageURL = DefaultUserImageURL
	}
	u.UpdatedAt = time.Now().UTC()
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return h
})

// CompareDummyPassword тратит столько же времени, сколько настоящая проверка пароля.
// Вызывается, когда пользователь не найден, чтобы время ответа не выдавало его отсутствие.
func CompareDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
}
