// files.go: сервис файлов: листинг уровня, метаданные, presigned URL.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/domain/model"
)

// DefaultDownloadURLExpiry: срок действия presigned URL по умолчанию.
const DefaultDownloadURLExpiry = time.Hour

// FileService: сервис файлов.
type FileService struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewFileService создаёт сервис файлов.
func NewFileService(client *apiclient.Client, logger *slog.Logger) *FileService {
	return &FileService{
		client: client,
		logger: logger.With(slog.String("component", "file_service")),
	}
}

// RootFiles возвращает файлы без папки (параметр folder_id не передаётся).
func (s *FileService) RootFiles(ctx context.Context) ([]model.File, error) {
	return s.list(ctx, nil)
}

// FilesByFolder возвращает файлы указанной папки.
func (s *FileService) FilesByFolder(ctx context.Context, folderID int64) ([]model.File, error) {
	return s.list(ctx, &folderID)
}

func (s *FileService) list(ctx context.Context, folderID *int64) ([]model.File, error) {
	var query url.Values
	if folderID != nil {
		query = url.Values{"folder_id": {strconv.FormatInt(*folderID, 10)}}
	}

	var files []model.File
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/files/",
		Query:  query,
	}, &files)
	if err != nil {
		return nil, fmt.Errorf("получение списка файлов: %w", err)
	}

	result := files[:0]
	for _, f := range files {
		if !model.SameParent(f.FolderID, folderID) {
			s.logger.WarnContext(ctx, "Backend вернул файл из другой папки, пропущен",
				slog.Int64("file_id", f.ID),
				slog.String("requested_folder", formatParent(folderID)),
				slog.String("actual_folder", formatParent(f.FolderID)),
			)
			continue
		}
		result = append(result, f)
	}
	if result == nil {
		result = []model.File{}
	}
	return result, nil
}

// File возвращает метаданные файла.
func (s *FileService) File(ctx context.Context, id int64) (*model.File, error) {
	var file model.File
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/files/" + strconv.FormatInt(id, 10),
	}, &file)
	if err != nil {
		return nil, fmt.Errorf("получение файла %d: %w", id, wrapNotFound(err))
	}
	return &file, nil
}

// DownloadURL возвращает presigned URL для скачивания файла.
// expiresIn округляется до секунд; <= 0: DefaultDownloadURLExpiry.
func (s *FileService) DownloadURL(ctx context.Context, id int64, expiresIn time.Duration) (*model.DownloadURL, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultDownloadURLExpiry
	}
	seconds := int64(expiresIn / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	var dl model.DownloadURL
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/files/" + strconv.FormatInt(id, 10) + "/download-url",
		Query:  url.Values{"expires_in": {strconv.FormatInt(seconds, 10)}},
	}, &dl)
	if err != nil {
		return nil, fmt.Errorf("получение ссылки на файл %d: %w", id, wrapNotFound(err))
	}

	s.logger.DebugContext(ctx, "Выдана ссылка на скачивание",
		slog.Int64("file_id", id),
		slog.Int64("expires_in", seconds),
	)
	return &dl, nil
}
