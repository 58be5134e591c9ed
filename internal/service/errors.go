// errors.go: ошибки сервисного слоя.
package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
)

var (
	// ErrEmptyFolderName: пустое (или из одних пробелов) имя папки.
	ErrEmptyFolderName = errors.New("имя папки не может быть пустым")
	// ErrEmptyCredentials: не заданы имя пользователя или пароль.
	ErrEmptyCredentials = errors.New("не заданы имя пользователя или пароль")
	// ErrNotFound: ресурс не найден на backend (404).
	ErrNotFound = errors.New("ресурс не найден")
)

// wrapNotFound добавляет ErrNotFound в цепочку для ответа 404,
// сохраняя исходную *apiclient.APIError.
func wrapNotFound(err error) error {
	if apiclient.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err) //nolint:errorlint // намеренный двойной wrap
	}
	return err
}
