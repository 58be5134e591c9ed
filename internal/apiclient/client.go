// Пакет apiclient: HTTP-клиент backend API G-Drive.
// Централизует транспорт: base URL, bearer-токен в каждом запросе,
// перехват ответов 401 (принудительный выход и переход на страницу логина).
// Повторов и собственных таймаутов нет: ошибки возвращаются вызывающей стороне.
package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Пути аутентификации: 401 на них: отказ в учётных данных, а не истёкшая сессия.
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
)

// maxErrorBody: предел чтения тела ответа с ошибкой.
const maxErrorBody = 64 << 10

// Config: параметры клиента.
type Config struct {
	// BaseURL: базовый URL backend (например, http://localhost:8000)
	BaseURL string
	// Timeout: таймаут HTTP-клиента (0: без таймаута)
	Timeout time.Duration
	// CACertPath: путь к CA-сертификату backend (пустая строка: системный пул)
	CACertPath string
	// HTTPClient: готовый HTTP-клиент (перекрывает Timeout и CACertPath)
	HTTPClient *http.Client
}

// Request: описание запроса к backend.
// Тело задаётся одним из полей: Form (x-www-form-urlencoded) или JSON.
type Request struct {
	Method string
	// Path: путь относительно BaseURL, например /folders/
	Path  string
	Query url.Values
	Form  url.Values
	JSON  any
}

// Client: HTTP-клиент backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент backend API.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("не задан base URL backend")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("некорректный base URL backend: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}

		if cfg.CACertPath != "" {
			tlsConfig, err := buildTLSConfig(cfg.CACertPath)
			if err != nil {
				return nil, fmt.Errorf("загрузка CA-сертификата backend: %w", err)
			}
			httpClient.Transport = &http.Transport{
				TLSClientConfig: tlsConfig,
			}
			logger.Info("CA-сертификат backend добавлен в пул доверия",
				slog.String("ca_cert", cfg.CACertPath),
			)
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "api_client")),
	}, nil
}

// BaseURL возвращает базовый URL backend без завершающего слеша.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// Do выполняет запрос к backend и декодирует JSON-ответ в out (out может быть nil).
// Session берётся из контекста (WithSession). Любой ответ вне 2xx: *APIError.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	sess, _ := SessionFrom(ctx)

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}
	c.applyAuth(req, sess)

	endpoint := normalizeEndpoint(r.Path)
	start := time.Now()

	resp, err := c.httpClient.Do(req) //nolint:gosec // G107: URL из конфигурации
	if err != nil {
		apiRequestsTotal.WithLabelValues(r.Method, endpoint, "error").Inc()
		return fmt.Errorf("запрос %s %s к backend: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()

	apiRequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	apiRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(r.Method, r.Path, resp.StatusCode, body)
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx, r.Path, sess)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("декодирование ответа %s %s: %w", r.Method, r.Path, err)
	}
	return nil
}

// newRequest собирает *http.Request: URL, тело и служебные заголовки.
func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	reqURL := c.baseURL + r.Path
	if len(r.Query) > 0 {
		reqURL += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("сериализация тела %s %s: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s %s: %w", r.Method, r.Path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// applyAuth добавляет bearer-токен, если он есть в хранилище сессии.
func (c *Client) applyAuth(req *http.Request, sess Session) {
	if sess.Tokens == nil {
		return
	}
	if token, ok := sess.Tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleUnauthorized: реакция на 401.
// Для login/register ничего не делает: ошибку покажет форма.
// Иначе, если вызывающая сторона не на странице логина, очищает токен
// и выполняет переход на логин (ровно один раз на ответ).
func (c *Client) handleUnauthorized(ctx context.Context, path string, sess Session) {
	if IsAuthEndpoint(path) {
		return
	}
	if sess.Nav != nil && sess.Nav.OnLoginPage() {
		return
	}

	if sess.Tokens != nil {
		if err := sess.Tokens.Remove(); err != nil {
			c.logger.WarnContext(ctx, "Ошибка очистки токена после 401",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	forcedLogoutsTotal.Inc()
	c.logger.InfoContext(ctx, "Сессия отклонена backend, принудительный выход",
		slog.String("path", path),
	)

	if sess.Nav != nil {
		sess.Nav.RedirectToLogin()
	}
}

// IsAuthEndpoint возвращает true для путей логина и регистрации.
func IsAuthEndpoint(path string) bool {
	return strings.Contains(path, LoginPath) || strings.Contains(path, RegisterPath)
}
