// metrics.go: Prometheus метрики исходящих запросов к backend.
// Регистрирует метрики: gw_api_requests_total, gw_api_request_duration_seconds,
// gw_api_forced_logouts_total.
package apiclient

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// apiRequestsTotal: количество запросов к backend.
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gw_api_requests_total",
			Help: "Общее количество запросов G-Drive Web к backend API",
		},
		[]string{"method", "endpoint", "status"},
	)

	// apiRequestDuration: длительность запросов к backend.
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gw_api_request_duration_seconds",
			Help:    "Длительность запросов к backend API в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// forcedLogoutsTotal: принудительные выходы по ответу 401.
	forcedLogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gw_api_forced_logouts_total",
			Help: "Количество принудительных выходов из сессии по ответу 401",
		},
	)
)

// normalizeEndpoint заменяет числовые идентификаторы в пути на {id}
// для ограничения кардинальности лейблов.
// /folders/42 → /folders/{id}, /files/7/download-url → /files/{id}/download-url,
// /folders/path/a/b → /folders/path/{path}
func normalizeEndpoint(path string) string {
	if strings.HasPrefix(path, "/folders/path/") {
		return "/folders/path/{path}"
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}
