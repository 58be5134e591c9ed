// auth.go: сервис аутентификации: регистрация, вход, текущий пользователь, выход.
// Токен сохраняется в хранилище сессии из контекста (apiclient.WithSession).
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/domain/model"
	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

// AuthService: сервис аутентификации.
type AuthService struct {
	client   *apiclient.Client
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
// tokenTTL: срок жизни сохранённого токена (<= 0: tokenstore.DefaultTTL).
func NewAuthService(client *apiclient.Client, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		client:   client,
		tokenTTL: tokenTTL,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// registerRequest: тело POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register регистрирует пользователя (JSON) и сохраняет выданный токен.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*model.TokenResponse, error) {
	var resp model.TokenResponse
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   apiclient.RegisterPath,
		JSON:   registerRequest{Email: email, Username: username, Password: password},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("регистрация: %w", err)
	}

	if err := s.storeToken(ctx, resp.AccessToken); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Пользователь зарегистрирован",
		slog.String("username", username),
	)
	return &resp, nil
}

// Login выполняет вход. Учётные данные передаются как
// application/x-www-form-urlencoded (OAuth2 password form backend), не JSON.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var resp model.TokenResponse
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   apiclient.LoginPath,
		Form:   url.Values{"username": {username}, "password": {password}},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("вход: %w", err)
	}

	if err := s.storeToken(ctx, resp.AccessToken); err != nil {
		return nil, err
	}

	attrs := []any{slog.String("username", username)}
	if claims, err := tokenstore.PeekClaims(resp.AccessToken); err == nil {
		attrs = append(attrs, slog.String("subject", claims.Subject))
	}
	s.logger.InfoContext(ctx, "Вход выполнен", attrs...)
	return &resp, nil
}

// CurrentUser возвращает владельца текущего токена.
func (s *AuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.client.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/auth/me"}, &user); err != nil {
		return nil, fmt.Errorf("получение текущего пользователя: %w", err)
	}
	return &user, nil
}

// Logout запрашивает инвалидацию сессии на backend.
// Локальный токен удаляется только при успехе: при ошибке он остаётся,
// и вызывающая сторона очищает его сама.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/auth/logout"}, nil); err != nil {
		return fmt.Errorf("выход: %w", err)
	}

	if sess, ok := apiclient.SessionFrom(ctx); ok && sess.Tokens != nil {
		if err := sess.Tokens.Remove(); err != nil {
			return fmt.Errorf("удаление токена: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "Выход выполнен")
	return nil
}

// storeToken сохраняет непустой токен в хранилище сессии.
// Вне сессии токен только возвращается вызывающей стороне.
func (s *AuthService) storeToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sess, ok := apiclient.SessionFrom(ctx)
	if !ok || sess.Tokens == nil {
		return nil
	}
	if err := sess.Tokens.Set(token, s.tokenTTL); err != nil {
		return fmt.Errorf("сохранение токена: %w", err)
	}
	return nil
}
