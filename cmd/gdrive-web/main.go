// Точка входа G-Drive Web: веб-клиент файлового хранилища G-Drive.
// Загружает конфигурацию, создаёт клиент backend API, сервисный слой,
// контроллеры страниц и handlers, запускает мониторинг backend (topologymetrics),
// HTTP-сервер и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bigkaa/gdrive-web/internal/api/handlers"
	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/config"
	"github.com/bigkaa/gdrive-web/internal/server"
	"github.com/bigkaa/gdrive-web/internal/service"
	"github.com/bigkaa/gdrive-web/internal/ui/controller"
	uihandlers "github.com/bigkaa/gdrive-web/internal/ui/handlers"
	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("G-Drive Web запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_url", cfg.APIURL),
	)

	if !cfg.CookieSecure {
		logger.Warn("GW_COOKIE_SECURE=false, cookie с токеном передаётся и по HTTP")
	}

	// 3. Каталоги переводов
	bundle, err := i18n.LoadEmbedded(logger)
	if err != nil {
		logger.Error("Ошибка загрузки i18n", slog.String("error", err.Error()))
		os.Exit(1)
	}
	i18n.SetBundle(bundle)

	// 4. Клиент backend API
	client, err := apiclient.New(apiclient.Config{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.APITimeout,
		CACertPath: cfg.APICACertPath,
	}, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента backend API", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Services
	authSvc := service.NewAuthService(client, cfg.TokenTTL, logger)
	folderSvc := service.NewFolderService(client, logger)
	fileSvc := service.NewFileService(client, logger)

	// 6. Контроллеры страниц и UI handlers
	dashboardCtl := controller.NewDashboardController(authSvc, folderSvc, fileSvc, logger)
	sessions := uihandlers.Sessions{SecureCookie: cfg.CookieSecure}

	authHandler := uihandlers.NewAuthHandler(
		sessions,
		controller.NewLoginController(authSvc, logger),
		controller.NewRegisterController(authSvc, logger),
		dashboardCtl,
		logger,
	)
	dashboardHandler := uihandlers.NewDashboardHandler(sessions, dashboardCtl, logger)

	// 7. topologymetrics: мониторинг backend API
	ctx := context.Background()
	var monitor handlers.DependencyMonitor
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"gdrive-web",
		cfg.DephealthGroup,
		cfg.APIURL,
		cfg.APIHealthPath,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
	} else {
		monitor = dephealthSvc
		defer dephealthSvc.Stop()
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 8. HTTP-сервер
	srv := server.New(cfg, logger, server.Handlers{
		Auth:      authHandler,
		Dashboard: dashboardHandler,
		Health:    handlers.NewHealthHandler(monitor),
	})

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("G-Drive Web остановлен")
}
