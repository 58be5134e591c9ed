package apiclient

import (
	"context"

	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

// Navigator: состояние навигации вызывающей стороны.
// Передаётся в interceptor явно (через Session), без обращения к глобальному состоянию.
type Navigator interface {
	// OnLoginPage возвращает true, если вызывающая сторона уже на странице логина.
	OnLoginPage() bool
	// RedirectToLogin переводит всё приложение на страницу логина.
	RedirectToLogin()
}

// Session: контекст одного логического потока: хранилище токена и навигация.
type Session struct {
	// Tokens: хранилище bearer-токена (nil: запросы без авторизации)
	Tokens tokenstore.Store
	// Nav: навигация (nil: 401 только очищает токен, без перехода)
	Nav Navigator
}

// sessionKey: ключ Session в контексте.
type sessionKey struct{}

// WithSession помещает Session в контекст запроса.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom извлекает Session из контекста.
// ok == false, если вызов выполняется вне сессии.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
