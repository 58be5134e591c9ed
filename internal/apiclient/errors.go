package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError: ответ backend со статусом вне диапазона 2xx.
type APIError struct {
	// Method: HTTP-метод запроса
	Method string
	// Path: путь запроса относительно base URL
	Path string
	// StatusCode: HTTP статус ответа
	StatusCode int
	// Detail: поле detail из тела ответа (пустое, если его нет)
	Detail string
	// Body: сырое тело ответа (усечённое)
	Body []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend %s %s вернул статус %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend %s %s вернул статус %d", e.Method, e.Path, e.StatusCode)
}

// newAPIError формирует APIError из тела ответа.
func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Detail:     parseDetail(body),
		Body:       body,
	}
}

// parseDetail извлекает detail из тела ошибки backend.
// Поддерживает строку ({"detail": "..."}) и список ошибок валидации
// ({"detail": [{"msg": "..."}]}); всё остальное: пустая строка.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if len(body) == 0 || json.Unmarshal(body, &envelope) != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(envelope.Detail, &s) == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(envelope.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// AsAPIError извлекает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode возвращает HTTP статус из ошибки или 0 для транспортных ошибок.
func StatusCode(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized возвращает true для ответа 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// DetailOf возвращает detail из ответа backend или пустую строку.
func DetailOf(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Detail
	}
	return ""
}
