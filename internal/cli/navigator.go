package cli

import (
	"fmt"
	"io"
	"sync"
)

// terminalNavigator: навигация консольного клиента.
// "Страницы логина" нет: вместо перехода печатается подсказка, один раз за команду.
type terminalNavigator struct {
	w    io.Writer
	once sync.Once
}

func newTerminalNavigator(w io.Writer) *terminalNavigator {
	return &terminalNavigator{w: w}
}

func (n *terminalNavigator) OnLoginPage() bool { return false }

func (n *terminalNavigator) RedirectToLogin() {
	n.once.Do(func() {
		fmt.Fprintln(n.w, "Сессия недействительна, токен удалён. Выполните: gdrive-cli login")
	})
}
