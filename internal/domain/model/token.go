package model

// TokenResponse: ответ backend на POST /auth/login и POST /auth/register.
type TokenResponse struct {
	// AccessToken: bearer-токен
	AccessToken string `json:"access_token"`
	// TokenType: тип токена (обычно "bearer")
	TokenType string `json:"token_type"`
}

// DownloadURL: ответ GET /files/{id}/download-url.
type DownloadURL struct {
	// URL: presigned URL для скачивания
	URL string `json:"download_url"`
	// ExpiresIn: срок действия URL в секундах
	ExpiresIn int `json:"expires_in"`
}
