// folders.go: сервис папок: листинг уровня, создание, чтение по id/пути, дерево.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/domain/model"
)

// FolderService: сервис папок.
type FolderService struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewFolderService создаёт сервис папок.
func NewFolderService(client *apiclient.Client, logger *slog.Logger) *FolderService {
	return &FolderService{
		client: client,
		logger: logger.With(slog.String("component", "folder_service")),
	}
}

// RootFolders возвращает корневые папки.
// Параметр parent_folder_id не передаётся: backend трактует это как «без родителя».
func (s *FolderService) RootFolders(ctx context.Context) ([]model.Folder, error) {
	return s.list(ctx, nil)
}

// FoldersByParent возвращает дочерние папки указанной папки.
func (s *FolderService) FoldersByParent(ctx context.Context, parentID int64) ([]model.Folder, error) {
	return s.list(ctx, &parentID)
}

// list запрашивает уровень дерева и отбрасывает папки с чужим родителем.
func (s *FolderService) list(ctx context.Context, parentID *int64) ([]model.Folder, error) {
	var query url.Values
	if parentID != nil {
		query = url.Values{"parent_folder_id": {strconv.FormatInt(*parentID, 10)}}
	}

	var folders []model.Folder
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/folders/",
		Query:  query,
	}, &folders)
	if err != nil {
		return nil, fmt.Errorf("получение списка папок: %w", err)
	}

	result := folders[:0]
	for _, f := range folders {
		if !model.SameParent(f.ParentFolderID, parentID) {
			s.logger.WarnContext(ctx, "Backend вернул папку другого уровня, пропущена",
				slog.Int64("folder_id", f.ID),
				slog.String("requested_parent", formatParent(parentID)),
				slog.String("actual_parent", formatParent(f.ParentFolderID)),
			)
			continue
		}
		result = append(result, f)
	}
	if result == nil {
		result = []model.Folder{}
	}
	return result, nil
}

// CreateFolder создаёт папку. parentID == nil: корневая папка;
// в теле запроса родитель тогда передаётся явным null.
func (s *FolderService) CreateFolder(ctx context.Context, name string, parentID *int64) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFolderName
	}

	var folder model.Folder
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/folders/",
		JSON:   model.CreateFolderRequest{Name: name, ParentFolderID: parentID},
	}, &folder)
	if err != nil {
		return nil, fmt.Errorf("создание папки %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "Папка создана",
		slog.Int64("folder_id", folder.ID),
		slog.String("path", folder.Path),
	)
	return &folder, nil
}

// Folder возвращает папку по идентификатору.
func (s *FolderService) Folder(ctx context.Context, id int64) (*model.Folder, error) {
	var folder model.Folder
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/folders/" + strconv.FormatInt(id, 10),
	}, &folder)
	if err != nil {
		return nil, fmt.Errorf("получение папки %d: %w", id, wrapNotFound(err))
	}
	return &folder, nil
}

// FolderByPath возвращает папку по материализованному пути ("/documents/projects").
func (s *FolderService) FolderByPath(ctx context.Context, path string) (*model.Folder, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("получение папки по пути: %w", ErrNotFound)
	}

	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	var folder model.Folder
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/folders/path/" + strings.Join(segments, "/"),
	}, &folder)
	if err != nil {
		return nil, fmt.Errorf("получение папки по пути %q: %w", path, wrapNotFound(err))
	}
	return &folder, nil
}

// Tree возвращает дерево папок, начиная с parentID (nil: от корня).
func (s *FolderService) Tree(ctx context.Context, parentID *int64) ([]model.FolderTree, error) {
	var query url.Values
	if parentID != nil {
		query = url.Values{"parent_folder_id": {strconv.FormatInt(*parentID, 10)}}
	}

	var tree []model.FolderTree
	err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/folders/tree",
		Query:  query,
	}, &tree)
	if err != nil {
		return nil, fmt.Errorf("получение дерева папок: %w", err)
	}
	return tree, nil
}

// formatParent: представление ссылки на родителя для логов.
func formatParent(id *int64) string {
	if id == nil {
		return "root"
	}
	return strconv.FormatInt(*id, 10)
}
