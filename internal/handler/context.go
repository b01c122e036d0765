package handler

import (
	"context"

	"github.com/GoArmGo/CafeApp/internal/domain"
	"github.com/GoArmGo/CafeApp/internal/session"
)

type contextKey int

const (
	sessionKey contextKey = iota
	userKey
)

func withSession(ctx context.Context, s *session.Data) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentSession возвращает сессию, разрешённую middleware Sessions.
func CurrentSession(ctx context.Context) *session.Data {
	s, _ := ctx.Value(sessionKey).(*session.Data)
	return s
}

// CurrentUser возвращает вошедшего пользователя или nil для анонимного запроса.
func CurrentUser(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userKey).(*domain.User)
	return u
}
