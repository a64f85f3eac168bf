package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/service"
	pkgerrors "github.com/kittenluv1/clubhouse-sub000/pkg/errors"
	"github.com/kittenluv1/clubhouse-sub000/pkg/response"
)

// ImportHandler 名录批量导入 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportClubs 批量导入名录
// POST /api/v1/clubs/import
//
// 支持两种方式：
//   - 文件上传: multipart/form-data, field="file"（xlsx）
//   - JSON 批量: application/json, body={"clubs": [...]}
func (h *ImportHandler) ImportClubs(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()
		records, err := h.importSvc.ParseImportFile(file)
		if err != nil {
			h.handleImportError(c, err)
			return
		}
		h.runImport(c, records)
		return
	}

	var req dto.ClubImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请上传 xlsx 文件或提供 clubs JSON 数组")
		return
	}
	h.runImport(c, req.Clubs)
}

func (h *ImportHandler) runImport(c *gin.Context, records []dto.ClubImportRecord) {
	resp, err := h.importSvc.ImportClubs(c.Request.Context(), records)
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleImportError 统一处理导入模块业务错误
func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportNoData),
		errors.Is(err, service.ErrImportBadHeader),
		errors.Is(err, service.ErrImportTooManyRows):
		response.ErrorWithDetails(c, http.StatusBadRequest, 23001, "导入文件不合法", err.Error())
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
