package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockBackend создаёт mock HTTP-сервер backend.
func setupMockBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestClient создаёт клиент к mock-серверу.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL}, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// fakeNavigator: Navigator, считающий переходы на логин.
type fakeNavigator struct {
	mu        sync.Mutex
	onLogin   bool
	redirects int
}

func (n *fakeNavigator) OnLoginPage() bool { return n.onLogin }

func (n *fakeNavigator) RedirectToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects++
}

// sessionCtx создаёт контекст с сессией и токеном.
func sessionCtx(t *testing.T, token string, nav *fakeNavigator) (context.Context, *tokenstore.MemoryStore) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	if token != "" {
		if err := store.Set(token, time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	sess := Session{Tokens: store}
	if nav != nil {
		sess.Nav = nav
	}
	return WithSession(context.Background(), sess), store
}

// TestClient_AttachesBearer проверяет, что запрос несёт ровно сохранённый токен.
func TestClient_AttachesBearer(t *testing.T) {
	var gotAuth, gotAccept, gotRequestID string
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	ctx, _ := sessionCtx(t, "secret-token", &fakeNavigator{})
	var out struct {
		OK bool `json:"ok"`
	}
	if err := newTestClient(t, server.URL).Do(ctx, Request{Method: http.MethodGet, Path: "/auth/me"}, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, ожидался %q", gotAuth, "Bearer secret-token")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, ожидался application/json", gotAccept)
	}
	if gotRequestID == "" {
		t.Error("ожидался X-Request-ID")
	}
	if !out.OK {
		t.Error("ответ не декодирован")
	}
}

// TestClient_NoTokenNoHeader проверяет отсутствие Authorization без токена и без сессии.
func TestClient_NoTokenNoHeader(t *testing.T) {
	calls := 0
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization не должен передаваться без токена")
		}
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, server.URL)

	ctx, _ := sessionCtx(t, "", nil)
	if err := client.Do(ctx, Request{Method: http.MethodGet, Path: "/folders/"}, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/folders/"}, nil); err != nil {
		t.Fatalf("Do без сессии: %v", err)
	}
	if calls != 2 {
		t.Errorf("ожидалось 2 запроса, получено %d", calls)
	}
}

// TestClient_Unauthorized_ForcedLogout проверяет реакцию на 401 вне auth endpoints.
func TestClient_Unauthorized_ForcedLogout(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
	})

	nav := &fakeNavigator{}
	ctx, store := sessionCtx(t, "expired", nav)

	err := newTestClient(t, server.URL).Do(ctx, Request{Method: http.MethodGet, Path: "/folders/"}, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("ожидалась ошибка 401, получена %v", err)
	}
	if DetailOf(err) != "Could not validate credentials" {
		t.Errorf("Detail = %q", DetailOf(err))
	}
	if _, ok := store.Get(); ok {
		t.Error("токен должен быть очищен после 401")
	}
	if nav.redirects != 1 {
		t.Errorf("ожидался ровно 1 переход на логин, получено %d", nav.redirects)
	}
}

// TestClient_Unauthorized_AuthEndpoints проверяет, что 401 на login/register
// не очищает токен и не выполняет переход.
func TestClient_Unauthorized_AuthEndpoints(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	})
	client := newTestClient(t, server.URL)

	for _, path := range []string{LoginPath, RegisterPath} {
		t.Run(path, func(t *testing.T) {
			nav := &fakeNavigator{}
			ctx, store := sessionCtx(t, "keep-me", nav)

			err := client.Do(ctx, Request{
				Method: http.MethodPost,
				Path:   path,
				Form:   url.Values{"username": {"u"}, "password": {"p"}},
			}, nil)

			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.StatusCode != http.StatusUnauthorized {
				t.Fatalf("ожидалась APIError 401, получена %v", err)
			}
			if apiErr.Detail != "Incorrect username or password" {
				t.Errorf("Detail = %q", apiErr.Detail)
			}
			if token, ok := store.Get(); !ok || token != "keep-me" {
				t.Error("токен не должен очищаться при 401 на auth endpoint")
			}
			if nav.redirects != 0 {
				t.Errorf("переходов быть не должно, получено %d", nav.redirects)
			}
		})
	}
}

// TestClient_Unauthorized_OnLoginPage проверяет, что на странице логина 401 не вызывает переход.
func TestClient_Unauthorized_OnLoginPage(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	nav := &fakeNavigator{onLogin: true}
	ctx, store := sessionCtx(t, "tok", nav)

	err := newTestClient(t, server.URL).Do(ctx, Request{Method: http.MethodGet, Path: "/auth/me"}, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("ожидалась 401, получена %v", err)
	}
	if nav.redirects != 0 {
		t.Errorf("переходов быть не должно, получено %d", nav.redirects)
	}
	if _, ok := store.Get(); !ok {
		t.Error("токен не должен очищаться на странице логина")
	}
}

// TestClient_Bodies проверяет кодирование form и JSON тел.
func TestClient_Bodies(t *testing.T) {
	var gotType string
	var gotForm url.Values
	var gotJSON map[string]any

	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		switch gotType {
		case "application/x-www-form-urlencoded":
			_ = r.ParseForm()
			gotForm = r.PostForm
		case "application/json":
			_ = json.NewDecoder(r.Body).Decode(&gotJSON)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, server.URL)

	err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   LoginPath,
		Form:   url.Values{"username": {"alice"}, "password": {"pw"}},
	}, nil)
	if err != nil {
		t.Fatalf("Do form: %v", err)
	}
	if gotType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if gotForm.Get("username") != "alice" || gotForm.Get("password") != "pw" {
		t.Errorf("форма = %v", gotForm)
	}

	var out map[string]any
	err = client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/folders/",
		JSON:   map[string]any{"name": "Docs", "parent_folder_id": nil},
	}, &out)
	if err != nil {
		t.Fatalf("Do json: %v", err)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if v, ok := gotJSON["parent_folder_id"]; !ok || v != nil {
		t.Errorf("parent_folder_id = %v (присутствует: %v), ожидался явный null", v, ok)
	}
}

// TestClient_ErrorDetail проверяет разбор detail разных форм.
func TestClient_ErrorDetail(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"строка", `{"detail":"Email already registered"}`, "Email already registered"},
		{"ошибки валидации", `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, "field required; too short"},
		{"нет detail", `{"error":"x"}`, ""},
		{"не JSON", `Internal Server Error`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			})

			err := newTestClient(t, server.URL).Do(context.Background(), Request{Method: http.MethodGet, Path: "/files/"}, nil)
			if StatusCode(err) != http.StatusBadRequest {
				t.Fatalf("ожидалась 400, получена %v", err)
			}
			if got := DetailOf(err); got != tt.expected {
				t.Errorf("Detail = %q, ожидался %q", got, tt.expected)
			}
		})
	}
}

// TestClient_TransportError проверяет, что транспортная ошибка не превращается в APIError
// и не вызывает принудительный выход.
func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	nav := &fakeNavigator{}
	ctx, store := sessionCtx(t, "tok", nav)

	err := newTestClient(t, baseURL).Do(ctx, Request{Method: http.MethodGet, Path: "/files/"}, nil)
	if err == nil {
		t.Fatal("ожидалась транспортная ошибка")
	}
	if _, ok := AsAPIError(err); ok {
		t.Error("транспортная ошибка не должна быть APIError")
	}
	if StatusCode(err) != 0 {
		t.Errorf("StatusCode = %d, ожидался 0", StatusCode(err))
	}
	if _, ok := store.Get(); !ok || nav.redirects != 0 {
		t.Error("транспортная ошибка не должна очищать токен")
	}
}

// TestClient_ContextCanceled проверяет отмену запроса через контекст.
func TestClient_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestClient(t, server.URL).Do(ctx, Request{Method: http.MethodGet, Path: "/files/"}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ожидалась context.Canceled, получена %v", err)
	}
}

// TestClient_QueryAndTrailingSlash проверяет сборку URL.
func TestClient_QueryAndTrailingSlash(t *testing.T) {
	var gotPath, gotQuery string
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})

	var out []any
	err := newTestClient(t, server.URL+"/").Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/folders/",
		Query:  url.Values{"parent_folder_id": {"5"}},
	}, &out)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotPath != "/folders/" {
		t.Errorf("path = %q, ожидался /folders/", gotPath)
	}
	if gotQuery != "parent_folder_id=5" {
		t.Errorf("query = %q, ожидался parent_folder_id=5", gotQuery)
	}
}

// TestNew_EmptyBaseURL проверяет валидацию конфигурации.
func TestNew_EmptyBaseURL(t *testing.T) {
	if _, err := New(Config{}, testLogger()); err == nil {
		t.Error("ожидалась ошибка для пустого base URL")
	}
}

// TestNormalizeEndpoint проверяет нормализацию путей для метрик.
func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/folders/", "/folders/"},
		{"/folders/42", "/folders/{id}"},
		{"/files/7/download-url", "/files/{id}/download-url"},
		{"/folders/path/docs/projects", "/folders/path/{path}"},
		{"/auth/me", "/auth/me"},
	}

	for _, tt := range tests {
		if got := normalizeEndpoint(tt.input); got != tt.expected {
			t.Errorf("normalizeEndpoint(%q) = %q, ожидался %q", tt.input, got, tt.expected)
		}
	}
}
