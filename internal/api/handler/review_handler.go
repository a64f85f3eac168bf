package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/service"
	pkgerrors "github.com/kittenluv1/clubhouse-sub000/pkg/errors"
	"github.com/kittenluv1/clubhouse-sub000/pkg/response"
)

// ReviewHandler 评价审核模块 HTTP 处理器
type ReviewHandler struct {
	moderationSvc service.ModerationService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(moderationSvc service.ModerationService) *ReviewHandler {
	return &ReviewHandler{moderationSvc: moderationSvc}
}

// SubmitReview 提交评价（进入待审核分区）
// POST /api/v1/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 可选认证：匿名提交 user_id 为空
	resp, err := h.moderationSvc.Submit(c.Request.Context(), &req, OptionalUserID(c))
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.Created(c, resp)
}

// ListPending 待审核列表（审核员）
// GET /api/v1/reviews/pending
func (h *ReviewHandler) ListPending(c *gin.Context) {
	var req dto.PendingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.moderationSvc.ListPending(c.Request.Context(), &req)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ModerateReview 执行审核决定（审核员）
// POST /api/v1/reviews/:id/moderate
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	var req dto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	moderatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.moderationSvc.Moderate(c.Request.Context(), reviewID, req.Decision, moderatorID); err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListRejected 当前用户的被拒评价列表
// GET /api/v1/reviews/rejected
func (h *ReviewHandler) ListRejected(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	items, err := h.moderationSvc.ListRejectedForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ResubmitReview 被拒评价修订后重新提交（作者本人）
// POST /api/v1/reviews/rejected/:id/resubmit
func (h *ReviewHandler) ResubmitReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	var req dto.ResubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.moderationSvc.Resubmit(c.Request.Context(), reviewID, &req, callerID); err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, nil)
}

// DiscardReview 作者永久删除被拒评价
// DELETE /api/v1/reviews/rejected/:id
func (h *ReviewHandler) DiscardReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.moderationSvc.Discard(c.Request.Context(), reviewID, callerID); err != nil {
		h.handleReviewError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleReviewError 统一处理审核模块业务错误
func (h *ReviewHandler) handleReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClubNotFound):
		response.NotFound(c, 20001, "社团不存在")
	case errors.Is(err, service.ErrReviewNotFound):
		response.NotFound(c, 21001, "评价不存在或已被处理")
	case errors.Is(err, service.ErrNotReviewAuthor):
		response.Forbidden(c, 10003, "只有评价作者本人可以执行此操作")
	case errors.Is(err, service.ErrInvalidDecision):
		response.BadRequest(c, 21002, "未知的审核决定")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
