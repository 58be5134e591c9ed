// Пакет tokenstore: хранилище bearer-токена сессии.
// Один плоский слот: токен и абсолютное время истечения, без шифрования и refresh.
// Реализации: CookieStore (браузерный cookie), FileStore (CLI), MemoryStore.
package tokenstore

import (
	"errors"
	"time"
)

// CookieName: имя cookie с access token.
const CookieName = "access_token"

// DefaultTTL: срок жизни токена по умолчанию (7 дней).
const DefaultTTL = 7 * 24 * time.Hour

// ErrEmptyToken: попытка сохранить пустой токен.
var ErrEmptyToken = errors.New("пустой токен")

// Store: слот для bearer-токена.
type Store interface {
	// Get возвращает токен, ok == false если токена нет или он истёк.
	Get() (token string, ok bool)
	// Set сохраняет токен со сроком жизни ttl (ttl <= 0: DefaultTTL).
	Set(token string, ttl time.Duration) error
	// Remove удаляет токен. Удаление отсутствующего токена не ошибка.
	Remove() error
}

// effectiveTTL подставляет DefaultTTL для неположительных значений.
func effectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
