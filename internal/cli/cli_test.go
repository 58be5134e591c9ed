package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testApp: клиент поверх mock backend с файлом токена во временном каталоге.
type testApp struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T, mux *http.ServeMux, stdin string) *testApp {
	t.Helper()
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &App{
		APIURL:    backend.URL,
		TokenFile: filepath.Join(t.TempDir(), "token.json"),
		TokenTTL:  time.Hour,
		Stdin:     strings.NewReader(stdin),
		Stdout:    ta.stdout,
		Stderr:    ta.stderr,
	}
	return ta
}

func (ta *testApp) run(args ...string) int {
	return ta.app.Run(context.Background(), args)
}

// storeToken сохраняет токен так же, как это делает login.
func (ta *testApp) storeToken(t *testing.T, token string) *tokenstore.FileStore {
	t.Helper()
	store := tokenstore.NewFileStore(ta.app.TokenFile, ta.app.APIURL)
	if err := store.Set(token, time.Hour); err != nil {
		t.Fatalf("Ошибка сохранения токена: %v", err)
	}
	return store
}

func TestRun_Usage(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), "")

	if code := ta.run(); code != ExitUsage {
		t.Errorf("Без команды: код %d, ожидался %d", code, ExitUsage)
	}
	if code := ta.run("frobnicate"); code != ExitUsage {
		t.Errorf("Неизвестная команда: код %d, ожидался %d", code, ExitUsage)
	}
	if code := ta.run("url", "abc"); code != ExitUsage {
		t.Errorf("url abc: код %d, ожидался %d", code, ExitUsage)
	}
	if !strings.Contains(ta.stderr.String(), "использование") {
		t.Error("Ожидалась справка в stderr")
	}
}

// TestLogin_SavesToken проверяет вход с вводом из stdin и сохранение токена в файл.
func TestLogin_SavesToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "s3cret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	})
	ta := newTestApp(t, mux, "alice\ns3cret\n")

	if code := ta.run("login"); code != ExitOK {
		t.Fatalf("login: код %d, stderr: %s", code, ta.stderr.String())
	}

	store := tokenstore.NewFileStore(ta.app.TokenFile, ta.app.APIURL)
	token, ok := store.Get()
	if !ok || token != "tok-1" {
		t.Errorf("Токен в файле: want tok-1, got %q (ok=%v)", token, ok)
	}
	if !strings.Contains(ta.stdout.String(), "alice") {
		t.Errorf("Ожидалось имя пользователя в выводе: %s", ta.stdout.String())
	}
}

// TestLogin_Invalid проверяет вывод detail и отсутствие подсказки о повторном входе.
func TestLogin_Invalid(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
	})
	ta := newTestApp(t, mux, "")
	ta.app.ReadPassword = func() (string, error) { return "wrong", nil }

	if code := ta.run("login", "-u", "alice"); code != ExitError {
		t.Fatalf("login: код %d, ожидался %d", code, ExitError)
	}
	if !strings.Contains(ta.stderr.String(), "Incorrect username or password") {
		t.Errorf("Ожидался detail backend: %s", ta.stderr.String())
	}
	if strings.Contains(ta.stderr.String(), "gdrive-cli login") {
		t.Error("401 на вход не должен печатать подсказку о повторном входе")
	}
	if _, err := os.Stat(ta.app.TokenFile); !os.IsNotExist(err) {
		t.Error("Файл токена не должен создаваться")
	}
}

// TestWhoami_Unauthorized проверяет очистку токена и подсказку при 401.
func TestWhoami_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	})
	ta := newTestApp(t, mux, "")
	store := ta.storeToken(t, "expired")

	if code := ta.run("whoami"); code != ExitError {
		t.Fatalf("whoami: код %d, ожидался %d", code, ExitError)
	}
	if _, ok := store.Get(); ok {
		t.Error("Токен должен быть удалён после 401")
	}
	if strings.Count(ta.stderr.String(), "gdrive-cli login") != 1 {
		t.Errorf("Ожидалась одна подсказка о входе: %s", ta.stderr.String())
	}
}

func TestWhoami_NoToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Неожиданный запрос %s %s", r.Method, r.URL.Path)
	})
	ta := newTestApp(t, mux, "")

	if code := ta.run("whoami"); code != ExitError {
		t.Errorf("whoami: код %d, ожидался %d", code, ExitError)
	}
}

// TestLogout_BackendFailure проверяет локальное удаление токена при ошибке backend.
func TestLogout_BackendFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ta := newTestApp(t, mux, "")
	store := ta.storeToken(t, "tok")

	if code := ta.run("logout"); code != ExitOK {
		t.Fatalf("logout: код %d, stderr: %s", code, ta.stderr.String())
	}
	if _, ok := store.Get(); ok {
		t.Error("Токен должен быть удалён локально")
	}
	if !strings.Contains(ta.stderr.String(), "Предупреждение") {
		t.Errorf("Ожидалось предупреждение: %s", ta.stderr.String())
	}
}

// TestList_Folder проверяет листинг папки: bearer-токен, параметры запросов, вывод.
func TestList_Folder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if got := r.URL.Query().Get("parent_folder_id"); got != "7" {
			t.Errorf("parent_folder_id = %q, ожидалось 7", got)
		}
		writeJSON(w, http.StatusOK, []any{
			map[string]any{"id": 8, "user_id": 1, "name": "reports", "parent_folder_id": 7, "path": "/docs/reports",
				"created_at": "2025-01-02T03:04:05Z", "updated_at": "2025-01-02T03:04:05Z"},
		})
	})
	mux.HandleFunc("GET /files/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("folder_id"); got != "7" {
			t.Errorf("folder_id = %q, ожидалось 7", got)
		}
		writeJSON(w, http.StatusOK, []any{
			map[string]any{"id": 21, "user_id": 1, "name": "plan.pdf", "size": 2048, "mime": "application/pdf",
				"storage_key": "k", "status": "completed", "folder_id": 7,
				"created_at": "2025-01-02T03:04:05Z", "updated_at": "2025-01-02T03:04:05Z"},
		})
	})
	ta := newTestApp(t, mux, "")
	ta.storeToken(t, "tok")

	if code := ta.run("ls", "-folder", "7"); code != ExitOK {
		t.Fatalf("ls: код %d, stderr: %s", code, ta.stderr.String())
	}
	out := ta.stdout.String()
	for _, want := range []string{"reports/", "plan.pdf", "2.0 KiB", "completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("В выводе нет %q:\n%s", want, out)
		}
	}
}

// TestMkdir_Root проверяет явный null родителя в теле запроса.
func TestMkdir_Root(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folders/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Ошибка декодирования: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		parent, present := body["parent_folder_id"]
		if !present || parent != nil {
			t.Errorf("parent_folder_id: ожидался явный null, получено %v (present=%v)", parent, present)
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": 3, "user_id": 1, "name": body["name"],
			"parent_folder_id": nil, "path": "/music",
			"created_at": "2025-01-02T03:04:05Z", "updated_at": "2025-01-02T03:04:05Z"})
	})
	ta := newTestApp(t, mux, "")
	ta.storeToken(t, "tok")

	if code := ta.run("mkdir", "music"); code != ExitOK {
		t.Fatalf("mkdir: код %d, stderr: %s", code, ta.stderr.String())
	}
	if !strings.Contains(ta.stdout.String(), "/music (id 3)") {
		t.Errorf("Неожиданный вывод: %s", ta.stdout.String())
	}
}

func TestTree(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/tree", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{
			map[string]any{"id": 1, "name": "docs", "path": "/docs", "parent_folder_id": nil, "files_count": 2,
				"children": []any{
					map[string]any{"id": 2, "name": "reports", "path": "/docs/reports", "parent_folder_id": 1,
						"files_count": 0, "children": []any{}},
				}},
		})
	})
	ta := newTestApp(t, mux, "")
	ta.storeToken(t, "tok")

	if code := ta.run("tree"); code != ExitOK {
		t.Fatalf("tree: код %d, stderr: %s", code, ta.stderr.String())
	}
	want := "docs/ (2)\n  reports/ (0)\n"
	if ta.stdout.String() != want {
		t.Errorf("Вывод:\n%q\nожидался:\n%q", ta.stdout.String(), want)
	}
}

func TestURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/21/download-url", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("expires_in"); got != "600" {
			t.Errorf("expires_in = %q, ожидалось 600", got)
		}
		writeJSON(w, http.StatusOK, map[string]any{"download_url": "https://s3.local/plan.pdf?sig=1", "expires_in": 600})
	})
	ta := newTestApp(t, mux, "")
	ta.storeToken(t, "tok")

	if code := ta.run("url", "-expires", "10m", "21"); code != ExitOK {
		t.Fatalf("url: код %d, stderr: %s", code, ta.stderr.String())
	}
	if strings.TrimSpace(ta.stdout.String()) != "https://s3.local/plan.pdf?sig=1" {
		t.Errorf("Неожиданный вывод: %s", ta.stdout.String())
	}
}
