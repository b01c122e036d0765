// Package session хранит привязку "браузер -> пользователь" на стороне сервера.
// Клиент получает только подписанный токен с ID сессии.
package session

import "errors"

// ErrSessionNotFound — сессии нет в хранилище (никогда не было или истёк TTL)
var ErrSessionNotFound = errors.New("session not found")

// Data — серверная запись сессии
type Data struct {
	ID        string
	UserID    int64 // 0 — анонимная сессия
	CSRFToken string
}

// Authenticated сообщает, привязан ли к сессии пользователь.
func (d *Data) Authenticated() bool {
	return d != nil && d.UserID > 0
}

// Flash — одноразовое сообщение, показываемое на следующей странице
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Категории flash-сообщений
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)
