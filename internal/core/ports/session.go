package ports

import (
	"context"

	"github.com/GoArmGo/CafeApp/internal/session"
)

// SessionStore — серверное хранилище сессий.
// Load возвращает session.ErrSessionNotFound для неизвестного или истёкшего ID.
type SessionStore interface {
	Create(ctx context.Context) (*session.Data, error)
	Load(ctx context.Context, id string) (*session.Data, error)
	BindUser(ctx context.Context, id string, userID int64) error
	UnbindUser(ctx context.Context, id string) error
	AddFlash(ctx context.Context, id string, flash session.Flash) error
	PopFlashes(ctx context.Context, id string) ([]session.Flash, error)
}
