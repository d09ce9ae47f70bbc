// Package routesはroutingを行います。
package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/config"
	"committee-tracker/backend/internal/handlers"
	"committee-tracker/backend/internal/repositories"
	"committee-tracker/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sqlx.DB, cfg *config.Config, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	// CORS対策
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// リポジトリ
	committeeRepo := repositories.NewCommitteeRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// サービス
	committeeService := services.NewCommitteeService(committeeRepo, logger)
	adminService := services.NewAdminService(adminRepo, logger)

	// ハンドラー
	committeeHandler := handlers.NewCommitteeHandler(committeeService, logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger)

	// ルーティング
	r.GET("/api/health", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			logger.WithError(err).Error("database ping failed")
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Database connection failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/committees", committeeHandler.GetCommitteesHandler)
	r.GET("/api/committees/:id", committeeHandler.GetCommitteeByIDHandler)
	r.GET("/api/summary", committeeHandler.GetSummaryHandler)
	r.POST("/api/auth/login", adminHandler.LoginHandler)

	admin := r.Group(AdminPrefix)
	admin.Use(BasicAuthMiddleware(adminService, logger))
	{
		admin.PUT("/committees/:id", committeeHandler.UpdateCommitteeHandler)
		admin.PUT("/committees/:id/tasks", committeeHandler.ReplaceTasksHandler)
		admin.DELETE("/committees/:id", committeeHandler.DeleteCommitteeHandler)
		admin.PUT("/password", adminHandler.ChangePasswordHandler)
	}

	// HTMLシェル
	r.GET("/admin", AdminPageHandler(cfg.PublicDir))
	r.NoRoute(AdminNotFoundHandler(adminService, logger), FallbackHandler(cfg.PublicDir))

	return r
}
