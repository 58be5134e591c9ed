// health.go: обработчики health endpoints G-Drive Web.
// /health/live: liveness probe (процесс жив)
// /health/ready: readiness probe (backend API доступен по данным мониторинга)
// /metrics: Prometheus метрики
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/gdrive-web/internal/config"
	"github.com/bigkaa/gdrive-web/internal/service"
)

const serviceName = "gdrive-web"

// DependencyMonitor: источник состояния зависимостей (service.DephealthService).
type DependencyMonitor interface {
	// Health возвращает состояние зависимостей: имя → ok.
	Health() map[string]bool
}

// HealthHandler: обработчик health endpoints.
type HealthHandler struct {
	monitor     DependencyMonitor
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
// monitor может быть nil (readiness вернёт "fail" для backend API).
func NewHealthHandler(monitor DependencyMonitor) *HealthHandler {
	return &HealthHandler{
		monitor:     monitor,
		promHandler: promhttp.Handler(),
	}
}

// healthCheckResult: результат проверки одной зависимости.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

type healthReadyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
	Checks    struct {
		BackendAPI healthCheckResult `json:"backend_api"`
	} `json:"checks"`
}

// HealthLive: liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthLiveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	})
}

// HealthReady: readiness probe по состоянию backend API.
// Возвращает 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := healthReadyResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}
	resp.Checks.BackendAPI = h.backendCheck()
	resp.Status = resp.Checks.BackendAPI.Status

	status := http.StatusOK
	if resp.Status == "fail" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// GetMetrics: Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// backendCheck переводит состояние мониторинга в статус проверки.
// Первая проверка ещё не выполнена: degraded.
func (h *HealthHandler) backendCheck() healthCheckResult {
	if h.monitor == nil {
		return healthCheckResult{Status: "fail", Message: "мониторинг не инициализирован"}
	}
	ok, known := h.monitor.Health()[service.BackendDependency]
	switch {
	case !known:
		return healthCheckResult{Status: "degraded", Message: "проверка ещё не выполнена"}
	case !ok:
		return healthCheckResult{Status: "fail", Message: "backend API недоступен"}
	default:
		return healthCheckResult{Status: "ok"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
