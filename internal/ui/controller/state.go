package controller

import (
	"context"
	"errors"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
)

// State: состояние страницы.
type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// Ключи сообщений об ошибках (каталоги i18n).
const (
	MsgLoginFailed     = "login.error.generic"
	MsgRegisterFailed  = "register.error.generic"
	MsgLoadFailed      = "dashboard.toast.load_failed"
	MsgCreateFailed    = "dashboard.toast.create_failed"
	MsgEmptyFolderName = "dashboard.toast.empty_name"
	MsgDownloadFailed  = "dashboard.toast.download_failed"
	MsgFolderNotFound  = "dashboard.toast.folder_not_found"
)

// Тексты по умолчанию для мест без каталога сообщений (CLI).
const (
	DefaultLoginError    = "Invalid credentials. Please try again."
	DefaultRegisterError = "Registration failed. Please try again."
)

// Toast: всплывающее уведомление.
type Toast struct {
	// Level: error или success
	Level string
	// Key: ключ сообщения в каталоге i18n
	Key string
	// Detail: detail из ответа backend (приоритетнее Key)
	Detail string
}

// errorToast формирует уведомление об ошибке.
func errorToast(key string, err error) *Toast {
	return &Toast{Level: "error", Key: key, Detail: apiclient.DetailOf(err)}
}

// isCanceled: запрос прерван клиентом (закрыта вкладка, отмена контекста).
func isCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || ctx.Err() != nil
}
