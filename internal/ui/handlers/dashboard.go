// dashboard.go: браузер папок и файлов.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/gdrive-web/internal/ui/controller"
	"github.com/bigkaa/gdrive-web/internal/ui/pages"
)

// DashboardHandler: обработчики dashboard.
type DashboardHandler struct {
	sessions  Sessions
	dashboard *controller.DashboardController
	logger    *slog.Logger
}

// NewDashboardHandler создаёт DashboardHandler.
func NewDashboardHandler(sessions Sessions, dashboard *controller.DashboardController, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		sessions:  sessions,
		dashboard: dashboard,
		logger:    logger.With(slog.String("component", "ui.dashboard")),
	}
}

// HandleDashboard: GET /dashboard[?folder=<id>|?path=<path>].
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		http.Error(w, "Некорректный идентификатор папки", http.StatusBadRequest)
		return
	}

	sess := h.sessions.open(w, r, controller.RouteDashboard)
	view := h.dashboard.Load(sess.ctx, sess.nav, sess.tokens, loc)
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}
	h.renderView(w, r, view)
}

// HandleCreateFolder: POST /dashboard/folders.
// Успех: возврат на уровень родителя; ошибка: тот же уровень с уведомлением.
func (h *DashboardHandler) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}
	parentID, err := parseOptionalID(r.PostForm.Get("parent_folder_id"))
	if err != nil {
		http.Error(w, "Некорректный идентификатор папки", http.StatusBadRequest)
		return
	}

	sess := h.sessions.open(w, r, controller.RouteDashboard)
	if _, ok := sess.tokens.Get(); !ok {
		http.Redirect(w, r, controller.RouteLogin, http.StatusSeeOther)
		return
	}

	toast := h.dashboard.CreateFolder(sess.ctx, sess.nav, r.PostForm.Get("name"), parentID)
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}

	view := h.dashboard.Load(sess.ctx, sess.nav, sess.tokens, controller.Location{FolderID: parentID})
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}
	if view.Toast == nil {
		view.Toast = toast
	}
	h.renderView(w, r, view)
}

// HandleDownload: GET /dashboard/files/{id}/download → presigned URL.
func (h *DashboardHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Некорректный идентификатор файла", http.StatusBadRequest)
		return
	}

	sess := h.sessions.open(w, r, controller.RouteDashboard)
	if _, ok := sess.tokens.Get(); !ok {
		http.Redirect(w, r, controller.RouteLogin, http.StatusFound)
		return
	}

	toast := h.dashboard.Download(sess.ctx, sess.nav, fileID)
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}

	view := h.dashboard.Load(sess.ctx, sess.nav, sess.tokens, controller.Location{})
	if redirectIfNavigated(w, r, sess.nav) {
		return
	}
	if view.Toast == nil {
		view.Toast = toast
	}
	h.renderView(w, r, view)
}

// renderView переводит состояние контроллера в данные страницы.
func (h *DashboardHandler) renderView(w http.ResponseWriter, r *http.Request, view controller.DashboardView) {
	ctx := r.Context()
	data := pages.DashboardData{
		Path:  r.URL.RequestURI(),
		Toast: toastData(ctx, view.Toast),
	}
	if r.Method != http.MethodGet {
		data.Path = controller.DashboardRoute(view.Current())
	}
	if view.User != nil {
		data.Username = view.User.Username
	}
	if id := view.Current(); id != nil {
		data.ParentID = strconv.FormatInt(*id, 10)
	}

	for _, c := range view.Breadcrumb {
		data.Breadcrumb = append(data.Breadcrumb, pages.CrumbData{Name: c.Name, Route: c.Route})
	}
	for _, f := range view.Folders {
		id := f.ID
		data.Folders = append(data.Folders, pages.FolderRow{
			Name:      f.Name,
			Route:     controller.DashboardRoute(&id),
			UpdatedAt: f.UpdatedAt,
		})
	}
	for _, f := range view.Files {
		row := pages.FileRow{
			ID:        f.ID,
			Name:      f.Name,
			Size:      f.Size,
			Status:    string(f.Status),
			UpdatedAt: f.UpdatedAt,
		}
		if f.Mime != nil {
			row.Mime = *f.Mime
		}
		data.Files = append(data.Files, row)
	}

	render(w, r, h.logger, http.StatusOK, pages.Dashboard(data))
}

// parseLocation разбирает ?folder=<id> или ?path=<path>.
func parseLocation(r *http.Request) (controller.Location, error) {
	q := r.URL.Query()
	id, err := parseOptionalID(q.Get("folder"))
	if err != nil {
		return controller.Location{}, err
	}
	return controller.Location{FolderID: id, Path: q.Get("path")}, nil
}

// parseOptionalID разбирает необязательный идентификатор (пустая строка: nil).
func parseOptionalID(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
