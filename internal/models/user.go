package models

// AdminUser は管理者アカウントを表します。
type AdminUser struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password"` // JSONに出さない
}

// LoginRequest は POST /api/auth/login のリクエストボディです。
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest は PUT /api/admin/password のリクエストボディです。
type ChangePasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}
