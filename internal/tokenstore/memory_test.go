package tokenstore

import (
	"testing"
	"time"
)

// TestMemoryStore_Lifecycle проверяет Set → Get → Remove.
func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Get(); ok {
		t.Fatal("новый store не должен содержать токен")
	}

	if err := store.Set("abc", time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if token, ok := store.Get(); !ok || token != "abc" {
		t.Errorf("Get = (%q, %v), ожидалось (abc, true)", token, ok)
	}

	if err := store.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("после Remove токена быть не должно")
	}

	// Повторное удаление: не ошибка
	if err := store.Remove(); err != nil {
		t.Errorf("повторный Remove вернул ошибку: %v", err)
	}
}

// TestMemoryStore_Expiry проверяет истечение токена по абсолютному времени.
func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })

	if err := store.Set("abc", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(DefaultTTL - time.Second)
	if _, ok := store.Get(); !ok {
		t.Fatal("токен ещё не должен истечь")
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(); ok {
		t.Error("токен должен истечь ровно через DefaultTTL")
	}
}
