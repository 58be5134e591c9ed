package controller

import (
	"context"
	"log/slog"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/service"
)

// RegisterView: состояние страницы регистрации.
type RegisterView struct {
	State    State
	Email    string
	Username string
	Detail   string
}

// ErrorMessage возвращает текст ошибки без каталога сообщений.
func (v RegisterView) ErrorMessage() string {
	if v.Detail != "" {
		return v.Detail
	}
	return DefaultRegisterError
}

// RegisterController: контроллер страницы регистрации.
type RegisterController struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewRegisterController создаёт контроллер регистрации.
func NewRegisterController(auth *service.AuthService, logger *slog.Logger) *RegisterController {
	return &RegisterController{
		auth:   auth,
		logger: logger.With(slog.String("component", "register_controller")),
	}
}

// Submit регистрирует пользователя и переходит на dashboard (backend сразу выдаёт токен).
func (c *RegisterController) Submit(ctx context.Context, nav Router, email, username, password string) RegisterView {
	if _, err := c.auth.Register(ctx, email, username, password); err != nil {
		c.logger.InfoContext(ctx, "Регистрация отклонена",
			slog.String("username", username),
			slog.Int("status", apiclient.StatusCode(err)),
			slog.String("error", err.Error()),
		)
		return RegisterView{
			State:    StateError,
			Email:    email,
			Username: username,
			Detail:   apiclient.DetailOf(err),
		}
	}

	nav.Navigate(RouteDashboard)
	return RegisterView{State: StateReady, Email: email, Username: username}
}
