// language.go: переключение языка UI.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/bigkaa/gdrive-web/internal/ui/controller"
	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
)

// langCookieMaxAge: срок жизни cookie языка (1 год).
const langCookieMaxAge = 365 * 24 * time.Hour

// HandleSetLanguage: POST /set-language.
// Сохраняет язык в cookie и возвращает на страницу из поля redirect (только локальный путь).
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("lang")
	if !i18n.IsSupported(lang) {
		lang = i18n.DefaultLang
	}

	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		Expires:  time.Now().Add(langCookieMaxAge),
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, localRedirect(r.FormValue("redirect")), http.StatusSeeOther)
}

// localRedirect пропускает только пути этого приложения ("/..." без "//").
func localRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return controller.RouteDashboard
	}
	return target
}
