// Пакет cli: команды консольного клиента gdrive-cli.
// Тот же сервисный слой, что и у веб-клиента; токен хранится в файле,
// а переход на страницу логина заменён подсказкой в stderr.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/service"
	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

// Коды завершения.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// errUsage: неверные аргументы команды.
var errUsage = errors.New("неверные аргументы")

// App: консольный клиент. Нулевые поля ввода-вывода недопустимы.
type App struct {
	// APIURL: base URL backend
	APIURL string
	// APITimeout: таймаут запроса (0: без таймаута)
	APITimeout time.Duration
	// CACertPath: CA-сертификат backend (опционально)
	CACertPath string
	// TokenFile: файл токена (пустая строка: путь по умолчанию)
	TokenFile string
	// TokenTTL: срок жизни сохранённого токена
	TokenTTL time.Duration

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ReadPassword читает пароль без эха (nil: terminal или строка из Stdin)
	ReadPassword func() (string, error)

	Logger *slog.Logger

	in *bufio.Reader
}

// env: зависимости одной команды.
type env struct {
	tokens  *tokenstore.FileStore
	auth    *service.AuthService
	folders *service.FolderService
	files   *service.FileService
}

type command struct {
	usage string
	run   func(ctx context.Context, a *App, e *env, args []string) error
}

var commands = map[string]command{
	"login":    {"login [-u username]", cmdLogin},
	"register": {"register [-email addr] [-u username]", cmdRegister},
	"logout":   {"logout", cmdLogout},
	"whoami":   {"whoami", cmdWhoami},
	"ls":       {"ls [-folder id | -path /a/b]", cmdList},
	"mkdir":    {"mkdir [-parent id] name", cmdMkdir},
	"tree":     {"tree", cmdTree},
	"url":      {"url [-expires 1h] file-id", cmdURL},
}

// Run разбирает глобальные флаги, выполняет команду и возвращает код завершения.
func (a *App) Run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("gdrive-cli", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	fs.StringVar(&a.APIURL, "server", a.APIURL, "base URL backend API")
	fs.StringVar(&a.TokenFile, "token-file", a.TokenFile, "файл токена")
	fs.Usage = a.usage
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return ExitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(a.Stderr, "неизвестная команда %q\n", rest[0])
		a.usage()
		return ExitUsage
	}

	e, err := a.newEnv()
	if err != nil {
		fmt.Fprintf(a.Stderr, "Ошибка: %v\n", err)
		return ExitError
	}

	ctx = apiclient.WithSession(ctx, apiclient.Session{
		Tokens: e.tokens,
		Nav:    newTerminalNavigator(a.Stderr),
	})

	if err := cmd.run(ctx, a, e, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(a.Stderr, "использование: gdrive-cli %s\n", cmd.usage)
			return ExitUsage
		}
		fmt.Fprintf(a.Stderr, "Ошибка: %s\n", describe(err))
		return ExitError
	}
	return ExitOK
}

func (a *App) newEnv() (*env, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	apiURL := strings.TrimRight(a.APIURL, "/")
	client, err := apiclient.New(apiclient.Config{
		BaseURL:    apiURL,
		Timeout:    a.APITimeout,
		CACertPath: a.CACertPath,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &env{
		tokens:  tokenstore.NewFileStore(a.TokenFile, apiURL),
		auth:    service.NewAuthService(client, a.TokenTTL, logger),
		folders: service.NewFolderService(client, logger),
		files:   service.NewFileService(client, logger),
	}, nil
}

func (a *App) usage() {
	fmt.Fprintln(a.Stderr, "использование: gdrive-cli [-server url] [-token-file path] <команда> [аргументы]")
	fmt.Fprintln(a.Stderr, "команды:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.Stderr, "  %s\n", commands[name].usage)
	}
}

// describe: текст ошибки для пользователя: detail backend, если он есть.
func describe(err error) string {
	if detail := apiclient.DetailOf(err); detail != "" {
		return detail
	}
	return err.Error()
}
