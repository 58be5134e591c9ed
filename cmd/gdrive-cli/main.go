// gdrive-cli: консольный клиент G-Drive.
//
// Команды:
//
//	gdrive-cli login [-u username]          Вход, токен сохраняется в файл
//	gdrive-cli register [-email] [-u]       Регистрация
//	gdrive-cli logout                       Выход (токен удаляется и при ошибке backend)
//	gdrive-cli whoami                       Текущий пользователь
//	gdrive-cli ls [-folder id | -path p]    Содержимое папки
//	gdrive-cli mkdir [-parent id] name      Создание папки
//	gdrive-cli tree                         Дерево папок
//	gdrive-cli url [-expires 1h] file-id    Ссылка на скачивание
//
// Конфигурация: те же переменные GW_*, что и у веб-клиента (GW_API_URL, GW_TOKEN_FILE).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bigkaa/gdrive-web/internal/cli"
	"github.com/bigkaa/gdrive-web/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(cli.ExitError)
	}

	// Логи в stderr, чтобы не смешивать их с выводом команд
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: max(cfg.LogLevel, slog.LevelWarn),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		APIURL:     cfg.APIURL,
		APITimeout: cfg.APITimeout,
		CACertPath: cfg.APICACertPath,
		TokenFile:  cfg.TokenFile,
		TokenTTL:   cfg.TokenTTL,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Logger:     logger,
	}

	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
