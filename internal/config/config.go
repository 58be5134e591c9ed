// Пакет config: загрузка и валидация конфигурации G-Drive Web
// из переменных окружения (и файла .env, если он есть).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// DotEnvFile: файл с переменными окружения в рабочем каталоге.
const DotEnvFile = ".env"

// Config содержит все параметры конфигурации G-Drive Web.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Backend API ---

	// Базовый URL backend (без завершающего /)
	APIURL string
	// Таймаут запроса к backend (0: без таймаута)
	APITimeout time.Duration
	// Путь к CA-сертификату backend (опционально)
	APICACertPath string
	// Путь health endpoint backend для мониторинга
	APIHealthPath string

	// --- Сессия ---

	// Срок жизни cookie с токеном
	TokenTTL time.Duration
	// Флаг Secure у cookie с токеном
	CookieSecure bool
	// Файл токена CLI (пустая строка: путь по умолчанию)
	TokenFile string

	// --- topologymetrics ---

	// Группа в метриках зависимостей
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает .env (если есть) и конфигурацию из переменных окружения.
// Уже заданные переменные окружения имеют приоритет над .env.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	var err error

	// --- Сервер ---

	// GW_PORT: порт HTTP-сервера (по умолчанию 3000)
	cfg.Port, err = getEnvInt("GW_PORT", 3000)
	if err != nil {
		return nil, fmt.Errorf("GW_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("GW_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// GW_LOG_LEVEL: уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("GW_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("GW_LOG_LEVEL: %w", err)
	}

	// GW_LOG_FORMAT: формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("GW_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("GW_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Backend API ---

	// GW_API_URL: базовый URL backend (по умолчанию http://localhost:8000)
	cfg.APIURL = strings.TrimRight(getEnvDefault("GW_API_URL", "http://localhost:8000"), "/")
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("GW_API_URL: некорректный URL %q, ожидается http(s)://host[:port]", cfg.APIURL)
	}

	// GW_API_TIMEOUT: таймаут запроса (по умолчанию 0, без таймаута)
	cfg.APITimeout, err = getEnvDuration("GW_API_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("GW_API_TIMEOUT: %w", err)
	}
	if cfg.APITimeout < 0 {
		return nil, fmt.Errorf("GW_API_TIMEOUT: отрицательное значение %s", cfg.APITimeout)
	}

	// GW_API_CA_CERT_PATH: CA-сертификат backend (опционально)
	cfg.APICACertPath = getEnvDefault("GW_API_CA_CERT_PATH", "")

	// GW_API_HEALTH_PATH: health endpoint backend (по умолчанию /health)
	cfg.APIHealthPath = getEnvDefault("GW_API_HEALTH_PATH", "/health")
	if !strings.HasPrefix(cfg.APIHealthPath, "/") {
		return nil, fmt.Errorf("GW_API_HEALTH_PATH: путь %q должен начинаться с /", cfg.APIHealthPath)
	}

	// --- Сессия ---

	// GW_TOKEN_TTL: срок жизни cookie с токеном (по умолчанию 7 дней)
	cfg.TokenTTL, err = getEnvDuration("GW_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("GW_TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("GW_TOKEN_TTL: значение должно быть положительным, получено %s", cfg.TokenTTL)
	}

	// GW_COOKIE_SECURE: флаг Secure у cookie (по умолчанию false)
	cfg.CookieSecure, err = getEnvBool("GW_COOKIE_SECURE", false)
	if err != nil {
		return nil, fmt.Errorf("GW_COOKIE_SECURE: %w", err)
	}

	// GW_TOKEN_FILE: файл токена CLI (опционально)
	cfg.TokenFile = getEnvDefault("GW_TOKEN_FILE", "")

	// --- topologymetrics ---

	// GW_DEPHEALTH_GROUP: группа метрик (по умолчанию gdrive)
	cfg.DephealthGroup = getEnvDefault("GW_DEPHEALTH_GROUP", "gdrive")

	// GW_DEPHEALTH_CHECK_INTERVAL: интервал проверки (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("GW_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// GW_SHUTDOWN_TIMEOUT: таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("GW_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// loadDotEnv загружает переменные из файла, отсутствие файла не ошибка.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает логическое значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное логическое значение: %q (true/false)", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
