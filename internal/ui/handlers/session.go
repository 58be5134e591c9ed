// Пакет handlers: HTTP-обработчики страниц G-Drive Web.
// Каждый запрос получает свою сессию: CookieStore (токен) и Navigation (текущий маршрут),
// которые передаются в API-клиент через контекст.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/tokenstore"
	"github.com/bigkaa/gdrive-web/internal/ui/controller"
	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
	"github.com/bigkaa/gdrive-web/internal/ui/pages"
)

// Sessions создаёт сессии запросов.
type Sessions struct {
	// SecureCookie: Secure flag для cookie с токеном
	SecureCookie bool
}

// requestSession: сессия одного HTTP-запроса.
type requestSession struct {
	ctx    context.Context
	tokens *tokenstore.CookieStore
	nav    *controller.Navigation
}

// open создаёт сессию для маршрута route и помещает её в контекст запроса.
func (s Sessions) open(w http.ResponseWriter, r *http.Request, route string) requestSession {
	tokens := tokenstore.NewCookieStore(w, r, s.SecureCookie)
	nav := controller.NewNavigation(route)
	ctx := apiclient.WithSession(r.Context(), apiclient.Session{Tokens: tokens, Nav: nav})
	return requestSession{ctx: ctx, tokens: tokens, nav: nav}
}

// redirectIfNavigated выполняет назначенный переход. Возвращает true, если переход был.
func redirectIfNavigated(w http.ResponseWriter, r *http.Request, nav *controller.Navigation) bool {
	target, ok := nav.Target()
	if !ok {
		return false
	}
	status := http.StatusFound
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	http.Redirect(w, r, target, status)
	return true
}

// render отправляет HTML-страницу.
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// toastData переводит уведомление контроллера в данные страницы.
func toastData(ctx context.Context, t *controller.Toast) *pages.ToastData {
	if t == nil {
		return nil
	}
	msg := t.Detail
	if msg == "" {
		msg = i18n.T(ctx, t.Key)
	}
	return &pages.ToastData{Level: t.Level, Message: msg}
}
