package model

import "time"

// Folder: папка пользователя.
// Папки образуют дерево через ParentFolderID; у корневых папок родителя нет.
// Path: материализованный путь ("/documents/projects"), поддерживается backend.
type Folder struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	ParentFolderID *int64    `json:"parent_folder_id"`
	Path           string    `json:"path"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsRoot возвращает true для папки без родителя.
func (f *Folder) IsRoot() bool {
	return f.ParentFolderID == nil
}

// FolderTree: узел дерева папок (ответ GET /folders/tree).
type FolderTree struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Path           string       `json:"path"`
	ParentFolderID *int64       `json:"parent_folder_id"`
	Children       []FolderTree `json:"children"`
	FilesCount     int          `json:"files_count"`
}

// CreateFolderRequest: тело POST /folders/.
// ParentFolderID без omitempty: отсутствие родителя передаётся явным null.
type CreateFolderRequest struct {
	Name           string `json:"name"`
	ParentFolderID *int64 `json:"parent_folder_id"`
}

// SameParent сравнивает две ссылки на родителя (nil == nil).
func SameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
