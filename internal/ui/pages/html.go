// Пакет pages: HTML-компоненты страниц G-Drive Web (templ.Component).
// Текст экранируется templ.EscapeString, ссылки проходят через templ.URL.
package pages

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter накапливает первую ошибку записи.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw пишет разметку как есть.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text пишет экранированный текст.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr пишет атрибут name="value" с экранированием значения.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href пишет безопасную ссылку.
func (h *htmlWriter) href(url string) {
	h.attr("href", string(templ.URL(url)))
}
