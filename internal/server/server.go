// Пакет server: HTTP-сервер G-Drive Web с graceful shutdown.
// Без TLS: TLS termination на ingress.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/gdrive-web/internal/api/handlers"
	"github.com/bigkaa/gdrive-web/internal/api/middleware"
	"github.com/bigkaa/gdrive-web/internal/config"
	"github.com/bigkaa/gdrive-web/internal/ui/controller"
	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
	uihandlers "github.com/bigkaa/gdrive-web/internal/ui/handlers"
	"github.com/bigkaa/gdrive-web/internal/ui/static"
)

// Handlers: обработчики, из которых собирается маршрутизатор.
type Handlers struct {
	Auth      *uihandlers.AuthHandler
	Dashboard *uihandlers.DashboardHandler
	Health    *handlers.HealthHandler
}

// Server: HTTP-сервер G-Drive Web.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(logger, h),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger.With(slog.String("component", "server")),
		cfg:        cfg,
	}
}

// NewRouter собирает маршруты UI и служебные endpoints.
func NewRouter(logger *slog.Logger, h Handlers) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// Служебные endpoints, без сессии и i18n
	router.Get("/health/live", h.Health.HealthLive)
	router.Get("/health/ready", h.Health.HealthReady)
	router.Get("/metrics", h.Health.GetMetrics)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	// Страницы
	router.Group(func(r chi.Router) {
		r.Use(i18n.Middleware)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, controller.RouteDashboard, http.StatusFound)
		})
		r.Get(controller.RouteLogin, h.Auth.HandleLoginPage)
		r.Post(controller.RouteLogin, h.Auth.HandleLogin)
		r.Get(controller.RouteRegister, h.Auth.HandleRegisterPage)
		r.Post(controller.RouteRegister, h.Auth.HandleRegister)
		r.Post("/logout", h.Auth.HandleLogout)
		r.Post("/set-language", uihandlers.HandleSetLanguage)

		r.Get(controller.RouteDashboard, h.Dashboard.HandleDashboard)
		r.Post("/dashboard/folders", h.Dashboard.HandleCreateFolder)
		r.Get("/dashboard/files/{id}/download", h.Dashboard.HandleDownload)
	})

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
