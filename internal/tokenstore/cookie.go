package tokenstore

import (
	"net/http"
	"sync"
	"time"
)

// CookieStore: хранение токена в cookie браузера.
// Привязан к одному HTTP-обмену: читает cookie из запроса, пишет Set-Cookie в ответ.
// Изменения, сделанные в рамках обмена, видны последующим вызовам Get.
// Безопасен для конкурентного использования (параллельные запросы Dashboard).
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	now    func() time.Time

	mu sync.Mutex
	// overridden: токен был установлен или удалён в рамках этого обмена
	overridden bool
	value      string
}

// NewCookieStore создаёт CookieStore для пары запрос/ответ.
// secure: выставлять Secure flag (true для HTTPS).
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{
		w:      w,
		r:      r,
		secure: secure,
		now:    time.Now,
	}
}

// Get возвращает токен из cookie запроса (или из изменений текущего обмена).
func (s *CookieStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overridden {
		return s.value, s.value != ""
	}

	cookie, err := s.r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Set устанавливает cookie с токеном и абсолютным временем истечения now+ttl.
func (s *CookieStore) Set(token string, ttl time.Duration) error {
	if token == "" {
		return ErrEmptyToken
	}
	ttl = effectiveTTL(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	s.overridden = true
	s.value = token
	return nil
}

// Remove удаляет cookie с токеном.
func (s *CookieStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	s.overridden = true
	s.value = ""
	return nil
}
