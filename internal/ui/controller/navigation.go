// Пакет controller: контроллеры страниц G-Drive Web.
// Контроллер вызывает сервисы и формирует состояние страницы (loading, error, ready);
// навигация передаётся явно через Router, без глобального состояния.
package controller

import (
	"strconv"
	"sync"
)

// Маршруты страниц.
const (
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
)

// Router: навигация для контроллеров.
// Расширяет apiclient.Navigator переходом на произвольный маршрут.
type Router interface {
	OnLoginPage() bool
	RedirectToLogin()
	Navigate(target string)
}

// Navigation: навигация в рамках одного HTTP-запроса.
// Запоминает текущий маршрут и цель перехода; безопасна для конкурентного использования
// (interceptor может вызываться из параллельных запросов dashboard).
type Navigation struct {
	current string

	mu        sync.Mutex
	target    string
	redirects int
}

// NewNavigation создаёт навигацию для текущего маршрута.
func NewNavigation(current string) *Navigation {
	return &Navigation{current: current}
}

// Current возвращает текущий маршрут.
func (n *Navigation) Current() string {
	return n.current
}

// OnLoginPage возвращает true на странице логина.
func (n *Navigation) OnLoginPage() bool {
	return n.current == RouteLogin
}

// RedirectToLogin назначает переход на страницу логина.
func (n *Navigation) RedirectToLogin() {
	n.Navigate(RouteLogin)
}

// Navigate назначает переход. Последний вызов определяет цель.
func (n *Navigation) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = target
	n.redirects++
}

// Target возвращает цель перехода; ok == false, если перехода не было.
func (n *Navigation) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.redirects > 0
}

// Redirects возвращает количество назначенных переходов.
func (n *Navigation) Redirects() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirects
}

// DashboardRoute возвращает маршрут dashboard для папки (nil: корень).
func DashboardRoute(folderID *int64) string {
	if folderID == nil {
		return RouteDashboard
	}
	return RouteDashboard + "?folder=" + strconv.FormatInt(*folderID, 10)
}
