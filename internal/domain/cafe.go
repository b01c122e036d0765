package domain

import (
	"fmt"
	"net/url"
)

// DefaultCafeImageURL — картинка-заглушка для кафе без своей картинки
const DefaultCafeImageURL = "/static/images/default-cafe.jpg"

// Cafe представляет модель кафе,
// соответствует таблице cafes в бд
type Cafe struct {
	ID          int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	URL         string `json:"url" db:"url"`
	Address     string `json:"address" db:"address"`
	CityCode    string `json:"city_code" db:"city_code"`
	ImageURL    string `json:"image_url" db:"image_url"`
}

func (Cafe) TableName() string {
	return "cafes"
}

// CafeDetails — кафе вместе с данными города (явный JOIN с cities)
type CafeDetails struct {
	Cafe
	CityName  string `json:"city_name" db:"city_name"`
	CityState string `json:"city_state" db:"city_state"`
}

// Location возвращает строку вида "San Francisco, CA".
func (c CafeDetails) Location() string {
	return fmt.Sprintf("%s, %s", c.CityName, c.CityState)
}

// CafeInput — проверенные данные формы добавления/редактирования кафе
type CafeInput struct {
	Name        string
	Description string
	URL         string
	Address     string
	CityCode    string
	ImageURL    string
}

// Apply перезаписывает все редактируемые поля кафе.
// Пустая картинка заменяется заглушкой.
func (c *Cafe) Apply(in CafeInput) {
	c.Name = in.Name
	c.Description = in.Description
	c.URL = in.URL
	c.Address = in.Address
	c.CityCode = in.CityCode
	c.ImageURL = in.ImageURL
	if c.ImageURL == "" {
		c.ImageURL = DefaultCafeImageURL
	}
}

// HasRemoteImage сообщает, указывает ли картинка кафе на внешний http(s) адрес.
func (c *Cafe) HasRemoteImage() bool {
	return IsRemoteURL(c.ImageURL)
}

// IsRemoteURL сообщает, является ли строка абсолютным http(s) адресом.
func IsRemoteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
