package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
)

// LoginData: данные страницы логина.
type LoginData struct {
	Username string
	// Error: сообщение об ошибке (пустое: формы без ошибки)
	Error string
}

// Login: страница входа.
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="card auth"><h1>`)
		h.text(i18n.T(ctx, "login.title"))
		h.raw(`</h1><p class="muted">`)
		h.text(i18n.T(ctx, "login.subtitle"))
		h.raw(`</p>`)
		formError(h, data.Error)

		h.raw(`<form method="post" action="/login">`)
		input(h, "username", "text", i18n.T(ctx, "login.username"), data.Username, "username")
		input(h, "password", "password", i18n.T(ctx, "login.password"), "", "current-password")
		h.raw(`<button type="submit" class="primary">`)
		h.text(i18n.T(ctx, "login.submit"))
		h.raw(`</button></form><p class="muted">`)
		h.text(i18n.T(ctx, "login.no_account"))
		h.raw(` <a`)
		h.href("/register")
		h.raw(`>`)
		h.text(i18n.T(ctx, "login.register_link"))
		h.raw(`</a></p></section>`)
		return h.err
	})
	return Layout(LayoutData{TitleKey: "login.title", Path: "/login"}, body)
}

// RegisterData: данные страницы регистрации.
type RegisterData struct {
	Email    string
	Username string
	Error    string
}

// Register: страница регистрации.
func Register(data RegisterData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="card auth"><h1>`)
		h.text(i18n.T(ctx, "register.title"))
		h.raw(`</h1>`)
		formError(h, data.Error)

		h.raw(`<form method="post" action="/register">`)
		input(h, "email", "email", i18n.T(ctx, "register.email"), data.Email, "email")
		input(h, "username", "text", i18n.T(ctx, "register.username"), data.Username, "username")
		input(h, "password", "password", i18n.T(ctx, "register.password"), "", "new-password")
		h.raw(`<button type="submit" class="primary">`)
		h.text(i18n.T(ctx, "register.submit"))
		h.raw(`</button></form><p class="muted">`)
		h.text(i18n.T(ctx, "register.have_account"))
		h.raw(` <a`)
		h.href("/login")
		h.raw(`>`)
		h.text(i18n.T(ctx, "register.login_link"))
		h.raw(`</a></p></section>`)
		return h.err
	})
	return Layout(LayoutData{TitleKey: "register.title", Path: "/register"}, body)
}

// formError выводит ошибку формы.
func formError(h *htmlWriter, msg string) {
	if msg == "" {
		return
	}
	h.raw(`<p class="form-error" role="alert">`)
	h.text(msg)
	h.raw(`</p>`)
}

// input выводит поле формы с подписью.
func input(h *htmlWriter, name, typ, label, value, autocomplete string) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input required`)
	h.attr("name", name)
	h.attr("type", typ)
	h.attr("autocomplete", autocomplete)
	if value != "" {
		h.attr("value", value)
	}
	h.raw(`></label>`)
}
