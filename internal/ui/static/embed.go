// Пакет static: встроенные статические ресурсы G-Drive Web (CSS).
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed css/*.css
var content embed.FS

// FileSystem возвращает http.FileSystem для /static/*.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS со встроенными файлами.
func FS() fs.FS {
	return content
}
