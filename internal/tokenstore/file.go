package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenFile: содержимое файла с токеном.
type TokenFile struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	// Server: base URL backend, для которого выдан токен
	Server string `json:"server"`
}

// FileStore: токен в JSON-файле (права 0600). Используется CLI.
type FileStore struct {
	path   string
	server string
	now    func() time.Time

	mu sync.Mutex
}

// DefaultFilePath возвращает путь к файлу токена по умолчанию:
// <UserConfigDir>/gdrive/token.json.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "gdrive", "token.json")
}

// NewFileStore создаёт FileStore.
// path: путь к файлу (пустая строка: DefaultFilePath), server: base URL backend.
func NewFileStore(path, server string) *FileStore {
	if path == "" {
		path = DefaultFilePath()
	}
	return &FileStore{path: path, server: server, now: time.Now}
}

// Path возвращает путь к файлу токена.
func (s *FileStore) Path() string {
	return s.path
}

// Load читает файл токена целиком.
// Отсутствующий файл: os.ErrNotExist (через errors.Is).
func (s *FileStore) Load() (*TokenFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (*TokenFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var tf TokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("разбор файла токена %s: %w", s.path, err)
	}
	return &tf, nil
}

// Get возвращает токен, если файл существует, токен не истёк
// и выдан тому же серверу (если server задан).
func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf, err := s.load()
	if err != nil || tf.Token == "" {
		return "", false
	}
	if !s.now().Before(tf.ExpiresAt) {
		return "", false
	}
	if s.server != "" && tf.Server != "" && tf.Server != s.server {
		return "", false
	}
	return tf.Token, true
}

// Set записывает токен в файл, создавая каталог при необходимости.
func (s *FileStore) Set(token string, ttl time.Duration) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("создание каталога для токена: %w", err)
	}

	data, err := json.MarshalIndent(&TokenFile{
		Token:     token,
		ExpiresAt: s.now().Add(effectiveTTL(ttl)).UTC(),
		Server:    s.server,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация токена: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("запись файла токена: %w", err)
	}
	return nil
}

// Remove удаляет файл токена.
func (s *FileStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("удаление файла токена: %w", err)
	}
	return nil
}
