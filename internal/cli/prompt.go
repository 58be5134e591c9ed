package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// input: общий буферизованный Stdin для всех запросов ввода команды.
func (a *App) input() *bufio.Reader {
	if a.in == nil {
		a.in = bufio.NewReader(a.Stdin)
	}
	return a.in
}

// promptLine печатает приглашение в Stderr и читает строку.
func (a *App) promptLine(label string) (string, error) {
	fmt.Fprint(a.Stderr, label)
	line, err := a.input().ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("чтение %q: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword читает пароль: без эха в терминале, иначе строкой из Stdin.
func (a *App) promptPassword() (string, error) {
	if a.ReadPassword != nil {
		return a.ReadPassword()
	}

	if f, ok := a.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.Stderr, "Пароль: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.Stderr)
		if err != nil {
			return "", fmt.Errorf("чтение пароля: %w", err)
		}
		return string(b), nil
	}
	return a.promptLine("Пароль: ")
}
