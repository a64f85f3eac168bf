package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
)

// ── 名录导入模块业务错误 ──

const maxImportRows = 2000

var (
	ErrImportNoData      = errors.New("导入文件无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("导入表头缺少必要列（organization_id/organization_name）")
)

// ImportService 名录批量导入业务接口
// 按 organization_id upsert：已存在的社团覆盖描述性字段，聚合字段不受导入影响
type ImportService interface {
	ParseImportFile(reader io.Reader) ([]dto.ClubImportRecord, error)
	ImportClubs(ctx context.Context, records []dto.ClubImportRecord) (*dto.ClubImportResponse, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger}
}

// ────────────────────── ParseImportFile ──────────────────────

// ParseImportFile 解析名录 Excel 文件，返回导入记录
func (s *importService) ParseImportFile(reader io.Reader) ([]dto.ClubImportRecord, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	// 解析表头（支持灵活列序）
	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["organization_id"] < 0 || colIndex["organization_name"] < 0 {
		return nil, ErrImportBadHeader
	}

	cell := func(row []string, key string) string {
		if idx := colIndex[key]; idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var records []dto.ClubImportRecord
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		record := dto.ClubImportRecord{
			OrganizationID:   cell(row, "organization_id"),
			OrganizationName: cell(row, "organization_name"),
			Category1Name:    cell(row, "category_1_name"),
			Category2Name:    cell(row, "category_2_name"),
			Description:      cell(row, "description"),
			ContactEmail:     cell(row, "contact_email"),
			WebsiteURL:       cell(row, "website_url"),
			SocialURL:        cell(row, "social_url"),
		}

		// 跳过全空行
		if record.OrganizationID == "" && record.OrganizationName == "" {
			continue
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrImportNoData
	}
	if len(records) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return records, nil
}

// parseHeaderIndex 解析导入表头，返回列名 -> 列索引映射
func parseHeaderIndex(header []string) map[string]int {
	keys := []string{
		"organization_id",
		"organization_name",
		"category_1_name",
		"category_2_name",
		"description",
		"contact_email",
		"website_url",
		"social_url",
	}
	idx := make(map[string]int, len(keys))
	for _, key := range keys {
		idx[key] = -1
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[lower]; ok {
			idx[lower] = i
		}
	}
	return idx
}

// ────────────────────── ImportClubs ──────────────────────

// ImportClubs 批量 upsert 名录记录
// 缺键记录跳过并记入 Errors；同一 organization_id 重复出现时后者覆盖前者
// （单条 upsert 语句不允许对同一行冲突更新两次）
func (s *importService) ImportClubs(ctx context.Context, records []dto.ClubImportRecord) (*dto.ClubImportResponse, error) {
	resp := &dto.ClubImportResponse{}

	byID := make(map[string]int)
	clubs := make([]model.Club, 0, len(records))
	for i, record := range records {
		if record.OrganizationID == "" || record.OrganizationName == "" {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("第 %d 条记录缺少 organization_id 或 organization_name", i+1))
			continue
		}

		club := model.Club{
			OrganizationID:   record.OrganizationID,
			OrganizationName: record.OrganizationName,
			Category1Name:    record.Category1Name,
			Category2Name:    record.Category2Name,
			Description:      record.Description,
			ContactEmail:     record.ContactEmail,
			WebsiteURL:       record.WebsiteURL,
			SocialURL:        record.SocialURL,
		}

		if pos, ok := byID[record.OrganizationID]; ok {
			clubs[pos] = club
			continue
		}
		byID[record.OrganizationID] = len(clubs)
		clubs = append(clubs, club)
	}

	if len(clubs) > 0 {
		if err := s.repo.Club.Upsert(ctx, clubs); err != nil {
			s.logger.Error("名录批量导入失败", zap.Int("records", len(clubs)), zap.Error(err))
			return nil, err
		}
	}

	resp.Imported = len(clubs)
	s.logger.Info("名录批量导入完成",
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}
