// auth.go: страницы входа и регистрации, выход.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/gdrive-web/internal/ui/controller"
	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
	"github.com/bigkaa/gdrive-web/internal/ui/pages"
)

// AuthHandler: обработчики аутентификации.
type AuthHandler struct {
	sessions  Sessions
	login     *controller.LoginController
	register  *controller.RegisterController
	dashboard *controller.DashboardController
	logger    *slog.Logger
}

// NewAuthHandler создаёт AuthHandler.
func NewAuthHandler(
	sessions Sessions,
	login *controller.LoginController,
	register *controller.RegisterController,
	dashboard *controller.DashboardController,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		login:     login,
		register:  register,
		dashboard: dashboard,
		logger:    logger.With(slog.String("component", "ui.auth")),
	}
}

// HandleLoginPage: GET /login.
// С токеном сразу переходит на dashboard.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.open(w, r, controller.RouteLogin)
	if _, ok := sess.tokens.Get(); ok {
		http.Redirect(w, r, controller.RouteDashboard, http.StatusFound)
		return
	}
	render(w, r, h.logger, http.StatusOK, pages.Login(pages.LoginData{}))
}

// HandleLogin: POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	sess := h.sessions.open(w, r, controller.RouteLogin)
	view := h.login.Submit(sess.ctx, sess.nav, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}

	msg := view.Detail
	if msg == "" {
		msg = i18n.T(r.Context(), controller.MsgLoginFailed)
	}
	render(w, r, h.logger, http.StatusOK, pages.Login(pages.LoginData{
		Username: view.Username,
		Error:    msg,
	}))
}

// HandleRegisterPage: GET /register.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusOK, pages.Register(pages.RegisterData{}))
}

// HandleRegister: POST /register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	sess := h.sessions.open(w, r, controller.RouteRegister)
	view := h.register.Submit(sess.ctx, sess.nav,
		r.PostForm.Get("email"), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}

	msg := view.Detail
	if msg == "" {
		msg = i18n.T(r.Context(), controller.MsgRegisterFailed)
	}
	render(w, r, h.logger, http.StatusOK, pages.Register(pages.RegisterData{
		Email:    view.Email,
		Username: view.Username,
		Error:    msg,
	}))
}

// HandleLogout: POST /logout. Переход на /login при любом исходе.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.open(w, r, controller.RouteDashboard)
	h.dashboard.Logout(sess.ctx, sess.nav, sess.tokens)
	redirectIfNavigated(w, r, sess.nav)
}
