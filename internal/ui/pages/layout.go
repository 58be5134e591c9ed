package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
)

// ToastData: уведомление для layout.
type ToastData struct {
	// Level: error или success
	Level   string
	Message string
}

// LayoutData: общие данные страницы.
type LayoutData struct {
	// TitleKey: ключ заголовка в каталоге i18n
	TitleKey string
	// Path: текущий путь страницы (для возврата после смены языка)
	Path  string
	Toast *ToastData
}

// Layout: обёртка страницы: head, переключатель языка, уведомление, содержимое.
func Layout(data LayoutData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		lang := i18n.LangFromContext(ctx)

		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(i18n.T(ctx, data.TitleKey))
		h.raw(` | G-Drive</title><link rel="stylesheet" href="/static/css/app.css"></head><body>`)

		h.raw(`<form class="lang-switch" method="post" action="/set-language">`)
		h.raw(`<input type="hidden" name="redirect"`)
		h.attr("value", data.Path)
		h.raw(`>`)
		for _, l := range []string{"en", "ru"} {
			h.raw(`<button type="submit" name="lang"`)
			h.attr("value", l)
			if l == lang {
				h.raw(` class="active"`)
			}
			h.raw(`>`)
			h.text(l)
			h.raw(`</button>`)
		}
		h.raw(`</form>`)

		if data.Toast != nil {
			h.raw(`<div role="alert"`)
			h.attr("class", "toast toast-"+data.Toast.Level)
			h.raw(`>`)
			h.text(data.Toast.Message)
			h.raw(`</div>`)
		}

		h.raw(`<main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main><footer>`)
		h.text(i18n.T(ctx, "layout.footer"))
		h.raw(`</footer></body></html>`)
		return h.err
	})
}
