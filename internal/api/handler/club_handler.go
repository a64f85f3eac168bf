package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/service"
	pkgerrors "github.com/kittenluv1/clubhouse-sub000/pkg/errors"
	"github.com/kittenluv1/clubhouse-sub000/pkg/response"
)

// ClubHandler 社团名录模块 HTTP 处理器
type ClubHandler struct {
	directorySvc service.DirectoryService
}

// NewClubHandler 创建 ClubHandler
func NewClubHandler(directorySvc service.DirectoryService) *ClubHandler {
	return &ClubHandler{directorySvc: directorySvc}
}

// SearchClubs 目录查询
// GET /api/v1/clubs
func (h *ClubHandler) SearchClubs(c *gin.Context) {
	var req dto.ClubSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	viewerID := OptionalUserID(c)
	items, total, totalPages, err := h.directorySvc.SearchClubs(c.Request.Context(), &req, viewerID)
	if err != nil {
		h.handleClubError(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	response.OKPage(c, items, total, page, service.PageSize, totalPages)
}

// GetClubDetail 社团详情（路径参数可以是名录 ID 或社团名称）
// GET /api/v1/clubs/:id
func (h *ClubHandler) GetClubDetail(c *gin.Context) {
	idOrName := c.Param("id")
	if idOrName == "" {
		response.BadRequest(c, 10001, "社团ID不能为空")
		return
	}

	detail, err := h.directorySvc.GetClubDetail(c.Request.Context(), idOrName, OptionalUserID(c))
	if err != nil {
		h.handleClubError(c, err)
		return
	}

	response.OK(c, detail)
}

// ListCategories 分类列表
// GET /api/v1/clubs/categories
func (h *ClubHandler) ListCategories(c *gin.Context) {
	categories, err := h.directorySvc.ListCategories(c.Request.Context())
	if err != nil {
		h.handleClubError(c, err)
		return
	}

	response.OK(c, dto.CategoryListResponse{Categories: categories})
}

// RecomputeClub 管理员手工修复社团聚合
// POST /api/v1/clubs/:id/recompute
func (h *ClubHandler) RecomputeClub(c *gin.Context) {
	clubID := c.Param("id")
	if clubID == "" {
		response.BadRequest(c, 10001, "社团ID不能为空")
		return
	}

	if err := h.directorySvc.RecomputeClub(c.Request.Context(), clubID); err != nil {
		h.handleClubError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleClubError 统一处理名录模块业务错误
func (h *ClubHandler) handleClubError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClubNotFound):
		response.NotFound(c, 20001, "社团不存在")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
