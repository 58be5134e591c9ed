package tokenstore

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims: данные, извлечённые из JWT без проверки подписи.
type Claims struct {
	// Subject: claim sub (обычно username)
	Subject string
	// ExpiresAt: claim exp (нулевое время, если claim отсутствует)
	ExpiresAt time.Time
}

// PeekClaims декодирует payload JWT без проверки подписи.
// Только для отображения и логирования: подпись проверяет backend.
// Для непрозрачных (не-JWT) токенов возвращает ошибку, сам токен при этом валиден для Store.
func PeekClaims(token string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return nil, fmt.Errorf("разбор JWT: %w", err)
	}

	c := &Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
