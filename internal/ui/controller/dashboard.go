package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/gdrive-web/internal/apiclient"
	"github.com/bigkaa/gdrive-web/internal/domain/model"
	"github.com/bigkaa/gdrive-web/internal/service"
	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

// Location: открываемый уровень дерева.
// Пустой Location: корень; FolderID приоритетнее Path.
type Location struct {
	FolderID *int64
	// Path: материализованный путь папки ("/documents/projects")
	Path string
}

// Crumb: элемент навигационной цепочки.
type Crumb struct {
	Name string
	// Route: ссылка; пустая для текущей папки
	Route string
}

// DashboardView: состояние dashboard.
type DashboardView struct {
	State State
	User  *model.User
	// Folder: открытая папка (nil: корень)
	Folder     *model.Folder
	Breadcrumb []Crumb
	Folders    []model.Folder
	Files      []model.File
	Toast      *Toast
}

// Current возвращает идентификатор открытой папки (nil: корень).
func (v DashboardView) Current() *int64 {
	if v.Folder == nil {
		return nil
	}
	id := v.Folder.ID
	return &id
}

// DashboardController: контроллер dashboard.
type DashboardController struct {
	auth    *service.AuthService
	folders *service.FolderService
	files   *service.FileService
	logger  *slog.Logger
}

// NewDashboardController создаёт контроллер dashboard.
func NewDashboardController(
	auth *service.AuthService,
	folders *service.FolderService,
	files *service.FileService,
	logger *slog.Logger,
) *DashboardController {
	return &DashboardController{
		auth:    auth,
		folders: folders,
		files:   files,
		logger:  logger.With(slog.String("component", "dashboard_controller")),
	}
}

// Load загружает уровень дерева.
//
// Без токена: переход на логин без запросов к backend.
// Иначе: текущий пользователь, затем параллельно папки и файлы уровня
// (и сама папка для навигационной цепочки). Объединение «всё или ничего»:
// любая ошибка: одно уведомление и пустой листинг.
func (c *DashboardController) Load(ctx context.Context, nav Router, tokens tokenstore.Store, loc Location) DashboardView {
	if _, ok := tokens.Get(); !ok {
		nav.Navigate(RouteLogin)
		return DashboardView{State: StateLoading}
	}

	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		return c.failed(ctx, nil, err)
	}

	folderID := loc.FolderID
	var current *model.Folder
	if folderID == nil && strings.Trim(loc.Path, "/") != "" {
		current, err = c.folders.FolderByPath(ctx, loc.Path)
		if err != nil {
			return c.failed(ctx, user, err)
		}
		folderID = &current.ID
	}

	var (
		folders []model.Folder
		files   []model.File
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if folderID == nil {
			folders, err = c.folders.RootFolders(gctx)
		} else {
			folders, err = c.folders.FoldersByParent(gctx, *folderID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if folderID == nil {
			files, err = c.files.RootFiles(gctx)
		} else {
			files, err = c.files.FilesByFolder(gctx, *folderID)
		}
		return err
	})
	if folderID != nil && current == nil {
		id := *folderID
		g.Go(func() error {
			var err error
			current, err = c.folders.Folder(gctx, id)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return c.failed(ctx, user, err)
	}

	return DashboardView{
		State:      StateReady,
		User:       user,
		Folder:     current,
		Breadcrumb: buildBreadcrumb(current),
		Folders:    folders,
		Files:      files,
	}
}

// failed: состояние после ошибки загрузки: уведомление, пустой листинг.
func (c *DashboardController) failed(ctx context.Context, user *model.User, err error) DashboardView {
	if isCanceled(ctx, err) {
		c.logger.DebugContext(ctx, "Загрузка dashboard прервана", slog.String("error", err.Error()))
	} else {
		c.logger.WarnContext(ctx, "Ошибка загрузки dashboard",
			slog.Int("status", apiclient.StatusCode(err)),
			slog.String("error", err.Error()),
		)
	}

	key := MsgLoadFailed
	if errors.Is(err, service.ErrNotFound) {
		key = MsgFolderNotFound
	}

	return DashboardView{
		State:      StateError,
		User:       user,
		Breadcrumb: buildBreadcrumb(nil),
		Folders:    []model.Folder{},
		Files:      []model.File{},
		Toast:      errorToast(key, err),
	}
}

// CreateFolder создаёт папку в parentID и возвращается на её уровень.
// При ошибке перехода нет, возвращается уведомление.
func (c *DashboardController) CreateFolder(ctx context.Context, nav Router, name string, parentID *int64) *Toast {
	folder, err := c.folders.CreateFolder(ctx, name, parentID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFolderName) {
			return &Toast{Level: "error", Key: MsgEmptyFolderName}
		}
		c.logger.WarnContext(ctx, "Ошибка создания папки",
			slog.Int("status", apiclient.StatusCode(err)),
			slog.String("error", err.Error()),
		)
		return errorToast(MsgCreateFailed, err)
	}

	nav.Navigate(DashboardRoute(folder.ParentFolderID))
	return nil
}

// Download переходит на presigned URL файла.
func (c *DashboardController) Download(ctx context.Context, nav Router, fileID int64) *Toast {
	dl, err := c.files.DownloadURL(ctx, fileID, service.DefaultDownloadURLExpiry)
	if err != nil {
		c.logger.WarnContext(ctx, "Ошибка получения ссылки на файл",
			slog.Int64("file_id", fileID),
			slog.String("error", err.Error()),
		)
		return errorToast(MsgDownloadFailed, err)
	}

	nav.Navigate(dl.URL)
	return nil
}

// Logout завершает сессию и переходит на логин при любом исходе.
// Ошибка backend не показывается: токен очищается локально.
func (c *DashboardController) Logout(ctx context.Context, nav Router, tokens tokenstore.Store) {
	if err := c.auth.Logout(ctx); err != nil {
		c.logger.WarnContext(ctx, "Ошибка выхода на backend, токен очищен локально",
			slog.String("error", err.Error()),
		)
		if rmErr := tokens.Remove(); rmErr != nil {
			c.logger.WarnContext(ctx, "Ошибка очистки токена",
				slog.String("error", rmErr.Error()),
			)
		}
	}
	nav.Navigate(RouteLogin)
}

// buildBreadcrumb строит цепочку из материализованного пути папки.
// Родитель адресуется по id, более дальние предки по пути.
func buildBreadcrumb(folder *model.Folder) []Crumb {
	crumbs := []Crumb{{Name: "/", Route: RouteDashboard}}
	if folder == nil {
		return crumbs
	}

	segments := strings.Split(strings.Trim(folder.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		segments = []string{folder.Name}
	}

	for i, seg := range segments {
		crumb := Crumb{Name: seg}
		switch {
		case i == len(segments)-1:
			// текущая папка
		case i == len(segments)-2 && folder.ParentFolderID != nil:
			crumb.Route = DashboardRoute(folder.ParentFolderID)
		default:
			crumb.Route = RouteDashboard + "?path=" + url.QueryEscape("/"+strings.Join(segments[:i+1], "/"))
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}
