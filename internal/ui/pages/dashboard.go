package pages

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/bigkaa/gdrive-web/internal/ui/i18n"
)

// CrumbData: элемент навигационной цепочки.
type CrumbData struct {
	Name  string
	Route string
}

// FolderRow: строка папки в листинге.
type FolderRow struct {
	Name      string
	Route     string
	UpdatedAt time.Time
}

// FileRow: строка файла в листинге.
type FileRow struct {
	ID        int64
	Name      string
	Size      int64
	Mime      string
	Status    string
	UpdatedAt time.Time
}

// DashboardData: данные страницы dashboard.
type DashboardData struct {
	Username   string
	Path       string
	Breadcrumb []CrumbData
	Folders    []FolderRow
	Files      []FileRow
	// ParentID: id открытой папки для формы создания (пустой: корень)
	ParentID string
	Toast    *ToastData
}

// Dashboard: страница браузера папок и файлов.
func Dashboard(data DashboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<header class="topbar"><h1>G-Drive</h1><div class="user">`)
		h.text(data.Username)
		h.raw(`<form method="post" action="/logout"><button type="submit">`)
		h.text(i18n.T(ctx, "dashboard.logout"))
		h.raw(`</button></form></div></header>`)

		h.raw(`<nav class="breadcrumb">`)
		for i, c := range data.Breadcrumb {
			if i > 0 {
				h.raw(`<span class="sep">/</span>`)
			}
			name := c.Name
			if i == 0 {
				name = i18n.T(ctx, "dashboard.root")
			}
			if c.Route == "" {
				h.raw(`<span class="current">`)
				h.text(name)
				h.raw(`</span>`)
				continue
			}
			h.raw(`<a`)
			h.href(c.Route)
			h.raw(`>`)
			h.text(name)
			h.raw(`</a>`)
		}
		h.raw(`</nav>`)

		h.raw(`<form class="inline" method="post" action="/dashboard/folders">`)
		h.raw(`<input type="hidden" name="parent_folder_id"`)
		h.attr("value", data.ParentID)
		h.raw(`><input name="name" required`)
		h.attr("placeholder", i18n.T(ctx, "dashboard.new_folder"))
		h.raw(`><button type="submit">`)
		h.text(i18n.T(ctx, "dashboard.create"))
		h.raw(`</button></form>`)

		if len(data.Folders) == 0 && len(data.Files) == 0 {
			h.raw(`<p class="empty">`)
			h.text(i18n.T(ctx, "dashboard.empty"))
			h.raw(`</p>`)
			return h.err
		}

		h.raw(`<table class="listing"><thead><tr><th>`)
		h.text(i18n.T(ctx, "dashboard.col.name"))
		h.raw(`</th><th>`)
		h.text(i18n.T(ctx, "dashboard.col.size"))
		h.raw(`</th><th>`)
		h.text(i18n.T(ctx, "dashboard.col.updated"))
		h.raw(`</th></tr></thead><tbody>`)

		for _, f := range data.Folders {
			h.raw(`<tr class="folder"><td><a`)
			h.href(f.Route)
			h.raw(`>`)
			h.text(f.Name)
			h.raw(`</a></td><td>—</td><td>`)
			h.text(humanize.Time(f.UpdatedAt))
			h.raw(`</td></tr>`)
		}

		for _, f := range data.Files {
			h.raw(`<tr`)
			h.attr("class", "file status-"+f.Status)
			h.raw(`><td`)
			if f.Mime != "" {
				h.attr("title", f.Mime)
			}
			h.raw(`>`)
			if f.Status == "completed" {
				h.raw(`<a`)
				h.href("/dashboard/files/" + strconv.FormatInt(f.ID, 10) + "/download")
				h.raw(`>`)
				h.text(f.Name)
				h.raw(`</a>`)
			} else {
				h.text(f.Name)
				h.raw(` <small>`)
				h.text(i18n.T(ctx, "file.status."+f.Status))
				h.raw(`</small>`)
			}
			h.raw(`</td><td>`)
			h.text(humanize.IBytes(uint64(max(f.Size, 0))))
			h.raw(`</td><td>`)
			h.text(humanize.Time(f.UpdatedAt))
			h.raw(`</td></tr>`)
		}

		h.raw(`</tbody></table>`)
		return h.err
	})
	return Layout(LayoutData{TitleKey: "dashboard.title", Path: data.Path, Toast: data.Toast}, body)
}
