// Пакет model: доменные модели G-Drive Web.
// Структуры повторяют JSON-контракт backend API (snake_case поля).
package model

import "time"

// User: пользователь, которому принадлежит токен (ответ GET /auth/me).
// Только для чтения: клиент никогда не изменяет пользователя.
type User struct {
	// ID: идентификатор пользователя в backend
	ID int64 `json:"id"`
	// Email: адрес электронной почты
	Email string `json:"email"`
	// Username: имя пользователя
	Username string `json:"username"`
	// IsActive: активен ли аккаунт
	IsActive bool `json:"is_active"`
	// CreatedAt: время регистрации
	CreatedAt time.Time `json:"created_at"`
}
