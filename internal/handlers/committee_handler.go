package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/models"
	"committee-tracker/backend/internal/repositories"
	"committee-tracker/backend/internal/services"
)

// CommitteeHandler は委員会関連のハンドラーを管理します。
type CommitteeHandler struct {
	committeeService *services.CommitteeService
	logger           *log.Logger
}

// NewCommitteeHandler は新しいCommitteeHandlerを作成します。
func NewCommitteeHandler(committeeService *services.CommitteeService, logger *log.Logger) *CommitteeHandler {
	return &CommitteeHandler{committeeService: committeeService, logger: logger}
}

// GetCommitteesHandler は全委員会をタスク付きで返します。
func (h *CommitteeHandler) GetCommitteesHandler(c *gin.Context) {
	committees, err := h.committeeService.ListCommittees(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, committees)
}

// GetCommitteeByIDHandler は指定IDの委員会を返します。
func (h *CommitteeHandler) GetCommitteeByIDHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	committee, err := h.committeeService.GetCommittee(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrCommitteeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, committee)
}

// GetSummaryHandler はステータス別件数と平均進捗率を返します。
func (h *CommitteeHandler) GetSummaryHandler(c *gin.Context) {
	summary, err := h.committeeService.GetSummary(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateCommitteeHandler は委員会を更新します。IDの存在チェックは行いません。
func (h *CommitteeHandler) UpdateCommitteeHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.CommitteeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.committeeService.UpdateCommittee(c.Request.Context(), id, req); err != nil {
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReplaceTasksHandler は委員会のタスク一覧を置き換えます。
func (h *CommitteeHandler) ReplaceTasksHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.ReplaceTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.committeeService.ReplaceTasks(c.Request.Context(), id, req.Tasks); err != nil {
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteCommitteeHandler は委員会を削除します。
func (h *CommitteeHandler) DeleteCommitteeHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.committeeService.DeleteCommittee(c.Request.Context(), id); err != nil {
		internalError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// parseID はパスパラメータ :id を整数に変換します。失敗時は400を返します。
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

func internalError(c *gin.Context, logger *log.Logger, err error) {
	logger.WithFields(log.Fields{
		"path":  c.FullPath(),
		"error": err,
	}).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
