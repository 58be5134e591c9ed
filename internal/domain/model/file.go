package model

import "time"

// FileStatus: статус файла в хранилище.
type FileStatus string

const (
	FileStatusUploading FileStatus = "uploading"
	FileStatusCompleted FileStatus = "completed"
	FileStatusFailed    FileStatus = "failed"
	FileStatusDeleted   FileStatus = "deleted"
)

// Valid проверяет, что статус входит в допустимое множество.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusUploading, FileStatusCompleted, FileStatusFailed, FileStatusDeleted:
		return true
	}
	return false
}

// File: метаданные файла.
// Файл без FolderID лежит в корне.
type File struct {
	// ID: идентификатор файла
	ID int64 `json:"id"`
	// UserID: владелец
	UserID int64 `json:"user_id"`
	// Name: имя файла
	Name string `json:"name"`
	// Size: размер в байтах
	Size int64 `json:"size"`
	// Mime: MIME-тип (может отсутствовать)
	Mime *string `json:"mime"`
	// StorageKey: ключ объекта в хранилище
	StorageKey string `json:"storage_key"`
	// Status: uploading, completed, failed, deleted
	Status FileStatus `json:"status"`
	// FolderID: папка (nil для корневых файлов)
	FolderID *int64 `json:"folder_id"`
	// CreatedAt: время создания
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt: время последнего обновления
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRoot возвращает true для файла без папки.
func (f *File) IsRoot() bool {
	return f.FolderID == nil
}
