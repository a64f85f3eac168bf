package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/service"
	pkgerrors "github.com/kittenluv1/clubhouse-sub000/pkg/errors"
	"github.com/kittenluv1/clubhouse-sub000/pkg/response"
)

// EngagementHandler 互动模块 HTTP 处理器
type EngagementHandler struct {
	engagementSvc service.EngagementService
}

// NewEngagementHandler 创建 EngagementHandler
func NewEngagementHandler(engagementSvc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementSvc: engagementSvc}
}

// ToggleLike 点赞/取消点赞（社团或评价）
// POST /api/v1/likes/toggle
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	var req dto.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.engagementSvc.ToggleLike(c.Request.Context(), model.SubjectKind(req.SubjectKind), req.SubjectID, userID)
	if err != nil {
		h.handleEngagementError(c, err)
		return
	}

	response.OK(c, resp)
}

// ToggleSave 收藏/取消收藏社团
// POST /api/v1/clubs/:id/save/toggle
func (h *EngagementHandler) ToggleSave(c *gin.Context) {
	clubID := c.Param("id")
	if clubID == "" {
		response.BadRequest(c, 10001, "社团ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.engagementSvc.ToggleSave(c.Request.Context(), clubID, userID)
	if err != nil {
		h.handleEngagementError(c, err)
		return
	}

	response.OK(c, resp)
}

// handleEngagementError 统一处理互动模块业务错误
func (h *EngagementHandler) handleEngagementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLikeSubjectNotFound):
		response.NotFound(c, 22001, "点赞对象不存在")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
