package controller

import (
	"context"
	"log/slog"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/service"
)

// LoginView: состояние страницы логина.
type LoginView struct {
	State State
	// Username: введённое имя (сохраняется в форме после ошибки)
	Username string
	// Detail: detail из ответа backend; пустой: показывается общее сообщение
	Detail string
}

// ErrorMessage возвращает текст ошибки без каталога сообщений.
func (v LoginView) ErrorMessage() string {
	if v.Detail != "" {
		return v.Detail
	}
	return DefaultLoginError
}

// LoginController: контроллер страницы логина.
type LoginController struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewLoginController создаёт контроллер логина.
func NewLoginController(auth *service.AuthService, logger *slog.Logger) *LoginController {
	return &LoginController{
		auth:   auth,
		logger: logger.With(slog.String("component", "login_controller")),
	}
}

// Submit выполняет вход. Успех: переход на dashboard;
// ошибка: состояние error с сообщением в форме, перехода нет.
func (c *LoginController) Submit(ctx context.Context, nav Router, username, password string) LoginView {
	if _, err := c.auth.Login(ctx, username, password); err != nil {
		c.logger.InfoContext(ctx, "Вход отклонён",
			slog.String("username", username),
			slog.Int("status", apiclient.StatusCode(err)),
			slog.String("error", err.Error()),
		)
		return LoginView{
			State:    StateError,
			Username: username,
			Detail:   apiclient.DetailOf(err),
		}
	}

	nav.Navigate(RouteDashboard)
	return LoginView{State: StateReady, Username: username}
}
