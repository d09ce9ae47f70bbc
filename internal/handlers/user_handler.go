package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/models"
	"committee-tracker/backend/internal/repositories"
	"committee-tracker/backend/internal/services"
)

// LoginFailedMessage はログイン失敗時に画面へ表示するメッセージです。
const LoginFailedMessage = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"

// AdminHandler は管理者関連のハンドラーを管理します。
type AdminHandler struct {
	adminService *services.AdminService
	logger       *log.Logger
}

// NewAdminHandler は新しいAdminHandlerを作成します。
func NewAdminHandler(adminService *services.AdminService, logger *log.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, logger: logger}
}

// LoginHandler は管理者ログインを処理します。
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	// JSONとして読めないボディは認証失敗ではなくリクエスト不正として400を返す
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := h.adminService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": LoginFailedMessage})
			return
		}
		internalError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"user": gin.H{"id": user.ID, "username": user.Username},
	})
}

// ChangePasswordHandler は管理者のパスワードを変更します。
func (h *AdminHandler) ChangePasswordHandler(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.adminService.ChangePassword(c.Request.Context(), req); err != nil {
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
