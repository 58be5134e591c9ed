package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestDephealthService_New проверяет создание сервиса с изолированным registry.
func TestDephealthService_New(t *testing.T) {
	ds, err := NewDephealthServiceWithRegisterer(
		"gdrive-web", "gdrive", "http://127.0.0.1:8000", "", 15*time.Second,
		testLogger(), prometheus.NewRegistry(),
	)
	if err != nil {
		t.Fatalf("NewDephealthServiceWithRegisterer: %v", err)
	}
	if ds == nil {
		t.Fatal("сервис не создан")
	}
}
