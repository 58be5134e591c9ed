package controller

import (
	"sync"
	"testing"

	"github.com/bigkaa/gdrive-web/internal/domain/model"
)

// TestNavigation проверяет запоминание цели и счётчик переходов.
func TestNavigation(t *testing.T) {
	nav := NewNavigation(RouteDashboard)
	if nav.OnLoginPage() {
		t.Error("dashboard не страница логина")
	}
	if _, ok := nav.Target(); ok {
		t.Error("перехода ещё не было")
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nav.RedirectToLogin()
		}()
	}
	wg.Wait()

	if target, ok := nav.Target(); !ok || target != RouteLogin {
		t.Errorf("Target = %q, %v", target, ok)
	}
	if nav.Redirects() != 10 {
		t.Errorf("Redirects = %d, ожидалось 10", nav.Redirects())
	}

	if !NewNavigation(RouteLogin).OnLoginPage() {
		t.Error("ожидалось OnLoginPage() == true для /login")
	}
}

// TestDashboardRoute проверяет маршрут уровня.
func TestDashboardRoute(t *testing.T) {
	id := int64(42)
	if got := DashboardRoute(nil); got != "/dashboard" {
		t.Errorf("DashboardRoute(nil) = %q", got)
	}
	if got := DashboardRoute(&id); got != "/dashboard?folder=42" {
		t.Errorf("DashboardRoute(42) = %q", got)
	}
}

// TestBuildBreadcrumb проверяет цепочку из материализованного пути.
func TestBuildBreadcrumb(t *testing.T) {
	parent := int64(3)
	folder := &model.Folder{ID: 7, Name: "projects", Path: "/work/docs/projects", ParentFolderID: &parent}

	crumbs := buildBreadcrumb(folder)
	expected := []Crumb{
		{Name: "/", Route: "/dashboard"},
		{Name: "work", Route: "/dashboard?path=%2Fwork"},
		{Name: "docs", Route: "/dashboard?folder=3"},
		{Name: "projects"},
	}
	if len(crumbs) != len(expected) {
		t.Fatalf("длина = %d, ожидалось %d: %+v", len(crumbs), len(expected), crumbs)
	}
	for i := range expected {
		if crumbs[i] != expected[i] {
			t.Errorf("crumb[%d] = %+v, ожидалось %+v", i, crumbs[i], expected[i])
		}
	}

	if root := buildBreadcrumb(nil); len(root) != 1 {
		t.Errorf("корень: ожидался 1 элемент, получено %+v", root)
	}
}
