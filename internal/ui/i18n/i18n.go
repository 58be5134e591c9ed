// Пакет i18n: каталоги сообщений G-Drive Web (en, ru).
// Язык запроса определяется middleware: cookie "lang" → Accept-Language → "en".
// В компонентах страниц используются T(ctx, key) и Tf(ctx, key, args...).
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLang: язык по умолчанию и fallback для отсутствующих ключей.
const DefaultLang = "en"

// localeFS: JSON-каталоги, встроенные при компиляции.
//
//go:embed locales/*.json
var localeFS embed.FS

// supported: поддерживаемые языки; первый: язык по умолчанию для matcher.
var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

// langKey: ключ языка в контексте запроса.
type langKey struct{}

// Bundle: каталоги переводов: язык → ключ → строка.
type Bundle struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string
}

// NewBundle создаёт пустой Bundle.
func NewBundle() *Bundle {
	return &Bundle{catalogs: make(map[string]map[string]string)}
}

// Add загружает плоский JSON-каталог {"key": "text"} для языка.
func (b *Bundle) Add(lang string, data []byte) error {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: разбор каталога %s: %w", lang, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalogs[lang] = messages
	return nil
}

// Languages возвращает загруженные языки.
func (b *Bundle) Languages() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	langs := make([]string, 0, len(b.catalogs))
	for l := range b.catalogs {
		langs = append(langs, l)
	}
	return langs
}

// Translate возвращает перевод; при отсутствии: английский вариант, затем сам ключ.
func (b *Bundle) Translate(lang, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := b.catalogs[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// LoadEmbedded загружает все встроенные каталоги locales/<lang>.json.
func LoadEmbedded(logger *slog.Logger) (*Bundle, error) {
	files, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: чтение locales: %w", err)
	}

	b := NewBundle()
	for _, f := range files {
		name := f.Name()
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("i18n: чтение %s: %w", name, err)
		}
		lang := strings.TrimSuffix(name, path.Ext(name))
		if err := b.Add(lang, data); err != nil {
			return nil, err
		}
		logger.Debug("i18n каталог загружен", slog.String("lang", lang))
	}

	logger.Info("i18n каталоги загружены", slog.Int("languages", len(files)))
	return b, nil
}

// --- Глобальный Bundle для компонентов страниц ---

var (
	globalMu     sync.RWMutex
	globalBundle *Bundle
)

// SetBundle устанавливает глобальный Bundle. Вызывается при старте.
func SetBundle(b *Bundle) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalBundle = b
}

func bundle() *Bundle {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalBundle
}

// WithLang помещает язык в контекст.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext возвращает язык из контекста (DefaultLang, если не задан).
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// T возвращает перевод ключа на язык из контекста.
func T(ctx context.Context, key string) string {
	b := bundle()
	if b == nil {
		return key
	}
	return b.Translate(LangFromContext(ctx), key)
}

// Tf: T с подстановкой аргументов.
// Формат-строки приходят из JSON-каталогов и статически не проверяются.
func Tf(ctx context.Context, key string, args ...any) string {
	return sprintf(T(ctx, key), args...)
}

// sprintf: fmt.Sprintf через переменную: printf-анализатор go vet
// не может проверить формат из каталога.
//
//nolint:govet // формат загружается во время выполнения
var sprintf = fmt.Sprintf

// MatchLanguage выбирает "en" или "ru" по заголовку Accept-Language.
func MatchLanguage(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "ru" {
		return "ru"
	}
	return DefaultLang
}

// IsSupported возвращает true для "en" и "ru".
func IsSupported(lang string) bool {
	return lang == "en" || lang == "ru"
}
