package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestSameParent проверяет сравнение ссылок на родительскую папку.
func TestSameParent(t *testing.T) {
	one, otherOne, two := int64(1), int64(1), int64(2)

	tests := []struct {
		name     string
		a, b     *int64
		expected bool
	}{
		{"оба nil", nil, nil, true},
		{"nil и значение", nil, &one, false},
		{"значение и nil", &one, nil, false},
		{"равные значения", &one, &otherOne, true},
		{"разные значения", &one, &two, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameParent(tt.a, tt.b); got != tt.expected {
				t.Errorf("SameParent() = %v, ожидалось %v", got, tt.expected)
			}
		})
	}
}

// TestFileStatus_Valid проверяет множество допустимых статусов.
func TestFileStatus_Valid(t *testing.T) {
	for _, s := range []FileStatus{FileStatusUploading, FileStatusCompleted, FileStatusFailed, FileStatusDeleted} {
		if !s.Valid() {
			t.Errorf("статус %q должен быть допустимым", s)
		}
	}
	if FileStatus("archived").Valid() {
		t.Error("статус archived не должен быть допустимым")
	}
}

// TestCreateFolderRequest_NullParent проверяет, что отсутствующий родитель
// сериализуется как явный null, а не опускается.
func TestCreateFolderRequest_NullParent(t *testing.T) {
	data, err := json.Marshal(CreateFolderRequest{Name: "Documents"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"parent_folder_id":null`) {
		t.Errorf("ожидался явный null в %s", data)
	}
}

// TestFile_DecodeRoot проверяет разбор корневого файла из ответа backend.
func TestFile_DecodeRoot(t *testing.T) {
	raw := `{"id":7,"user_id":1,"name":"a.txt","size":12,"mime":null,
		"storage_key":"u1/a.txt","status":"completed","folder_id":null,
		"created_at":"2025-01-02T03:04:05Z","updated_at":"2025-01-02T03:04:05Z"}`

	var f File
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("ошибка разбора: %v", err)
	}
	if !f.IsRoot() {
		t.Error("файл без folder_id должен быть корневым")
	}
	if f.Mime != nil {
		t.Error("ожидался Mime == nil")
	}
	if f.Status != FileStatusCompleted {
		t.Errorf("Status = %q, ожидался completed", f.Status)
	}
}
