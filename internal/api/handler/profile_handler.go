package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/service"
	pkgerrors "github.com/kittenluv1/clubhouse-sub000/pkg/errors"
	"github.com/kittenluv1/clubhouse-sub000/pkg/response"
)

// ProfileHandler 用户资料模块 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetProfile 当前用户资料 + 未读被拒评价角标
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateAlias 更新显示别名
// PUT /api/v1/profile/alias
func (h *ProfileHandler) UpdateAlias(c *gin.Context) {
	var req dto.UpdateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileSvc.UpdateAlias(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, resp)
}

// MarkRejectedViewed 推进未读被拒评价水位线
// PUT /api/v1/profile/rejected-viewed
func (h *ProfileHandler) MarkRejectedViewed(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.profileSvc.MarkRejectedViewed(c.Request.Context(), userID); err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProfileError 统一处理用户资料模块业务错误
func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
