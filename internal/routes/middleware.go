package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/repositories"
	"committee-tracker/backend/internal/services"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-ID"

// AdminPrefix は管理者用APIのパスです。配下はすべてBasic認証が必要です。
const AdminPrefix = "/api/admin"

// BasicAuthMiddleware はBasic認証ヘッダーを毎回DBの管理者と照合するミドルウェアです。
func BasicAuthMiddleware(adminService *services.AdminService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorizeAdmin(c, adminService, logger) {
			return
		}
		c.Next()
	}
}

// AdminNotFoundHandler は未登録の /api/admin 配下へのリクエストを処理します。
// 認証を通ったものだけが404になり、それ以外は登録済みルートと同じ401を返します。
// /api/admin 以外のパスは何もせず次のハンドラーに渡します。
func AdminNotFoundHandler(adminService *services.AdminService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p != AdminPrefix && !strings.HasPrefix(p, AdminPrefix+"/") {
			return
		}
		if !authorizeAdmin(c, adminService, logger) {
			return
		}
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
}

// authorizeAdmin はBasic認証ヘッダーを検証し、成功時は管理者をコンテキストに保存します。
// 失敗時はレスポンスを書いて中断し、false を返します。
func authorizeAdmin(c *gin.Context, adminService *services.AdminService, logger *log.Logger) bool {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}

	user, err := adminService.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return false
		}
		logger.WithError(err).Error("basic auth lookup failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	c.Set("admin_id", user.ID)
	c.Set("admin_username", user.Username)
	return true
}

// RequestLogger はリクエストごとに1行の構造化ログを出力します。
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		entry := logger.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if user, ok := c.Get("admin_username"); ok {
			entry = entry.WithField("admin", user)
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
