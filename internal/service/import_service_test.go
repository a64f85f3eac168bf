package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
)

func setupTestImportService() (ImportService, *mockRepos) {
	mocks := newMockRepos()
	svc := NewImportService(mocks.repo, zap.NewNop())
	return svc, mocks
}

// buildImportXLSX 在内存中构造导入用 Excel 文件
func buildImportXLSX(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("构造单元格坐标失败: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("写入单元格失败: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("写出 Excel 失败: %v", err)
	}
	return &buf
}

var importHeader = []string{"organization_id", "organization_name", "category_1_name", "category_2_name", "description", "contact_email", "website_url", "social_url"}

// ── ParseImportFile 测试 ──

func TestImportService_ParseImportFile(t *testing.T) {
	svc, _ := setupTestImportService()

	buf := buildImportXLSX(t, [][]string{
		importHeader,
		{"club-a", "Chess Club", "Games", "", "每周例会", "chess@example.edu", "https://chess.example.edu", ""},
		{"", "", "", "", "", "", "", ""},
		{"club-b", "Robotics", "Engineering", "Competition", "", "", "", ""},
	})

	records, err := svc.ParseImportFile(buf)
	if err != nil {
		t.Fatalf("ParseImportFile 应成功: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("空行应被跳过，期望2条，实际=%d", len(records))
	}
	if records[0].OrganizationID != "club-a" || records[0].ContactEmail != "chess@example.edu" {
		t.Errorf("首条记录解析不符: %+v", records[0])
	}
	if records[1].Category2Name != "Competition" {
		t.Errorf("期望 category_2_name=Competition，实际=%s", records[1].Category2Name)
	}
}

func TestImportService_ParseImportFile_HeaderOrderIndependent(t *testing.T) {
	svc, _ := setupTestImportService()

	buf := buildImportXLSX(t, [][]string{
		{"Organization_Name", "ORGANIZATION_ID", "category_1_name"},
		{"Chess Club", "club-a", "Games"},
	})

	records, err := svc.ParseImportFile(buf)
	if err != nil {
		t.Fatalf("乱序表头应可解析: %v", err)
	}
	if records[0].OrganizationID != "club-a" || records[0].OrganizationName != "Chess Club" {
		t.Errorf("列序无关解析不符: %+v", records[0])
	}
}

func TestImportService_ParseImportFile_BadInput(t *testing.T) {
	svc, _ := setupTestImportService()

	onlyHeader := buildImportXLSX(t, [][]string{importHeader})
	if _, err := svc.ParseImportFile(onlyHeader); !errors.Is(err, ErrImportNoData) {
		t.Errorf("仅表头期望 ErrImportNoData，实际=%v", err)
	}

	badHeader := buildImportXLSX(t, [][]string{
		{"id", "name"},
		{"club-a", "Chess Club"},
	})
	if _, err := svc.ParseImportFile(badHeader); !errors.Is(err, ErrImportBadHeader) {
		t.Errorf("缺必要列期望 ErrImportBadHeader，实际=%v", err)
	}

	if _, err := svc.ParseImportFile(bytes.NewBufferString("not an xlsx")); err == nil {
		t.Error("非 Excel 内容应报错")
	}
}

// ── ImportClubs 测试 ──

func TestImportService_ImportClubs_UpsertAndDedup(t *testing.T) {
	svc, mocks := setupTestImportService()

	records := []dto.ClubImportRecord{
		{OrganizationID: "club-a", OrganizationName: "Chess Club", Category1Name: "Games"},
		{OrganizationID: "club-b", OrganizationName: "Robotics"},
		// 同键重复：后者覆盖前者
		{OrganizationID: "club-a", OrganizationName: "Chess & Go Club", Category1Name: "Games"},
		// 缺键：跳过并计入 Errors
		{OrganizationID: "", OrganizationName: "Nameless"},
	}

	resp, err := svc.ImportClubs(context.Background(), records)
	if err != nil {
		t.Fatalf("ImportClubs 应成功: %v", err)
	}
	if resp.Imported != 2 {
		t.Errorf("期望导入2条，实际=%d", resp.Imported)
	}
	if resp.Skipped != 1 || len(resp.Errors) != 1 {
		t.Errorf("期望跳过1条并记录错误，实际 skipped=%d errors=%v", resp.Skipped, resp.Errors)
	}
	if mocks.club.clubs["club-a"].OrganizationName != "Chess & Go Club" {
		t.Errorf("同键重复应后者覆盖前者，实际=%s", mocks.club.clubs["club-a"].OrganizationName)
	}
}

func TestImportService_ImportClubs_PreservesAggregates(t *testing.T) {
	svc, mocks := setupTestImportService()
	seedClub(mocks, "club-a", "Chess Club", "Games", "", floatPtr(4.5), 9)

	records := []dto.ClubImportRecord{
		{OrganizationID: "club-a", OrganizationName: "Chess Club", Description: "更新后的简介"},
	}
	if _, err := svc.ImportClubs(context.Background(), records); err != nil {
		t.Fatalf("ImportClubs 应成功: %v", err)
	}

	club := mocks.club.clubs["club-a"]
	if club.Description != "更新后的简介" {
		t.Errorf("描述性字段应被覆盖，实际=%s", club.Description)
	}
	if club.AverageSatisfaction == nil || *club.AverageSatisfaction != 4.5 || club.TotalNumReviews != 9 {
		t.Errorf("导入不应触碰聚合字段，实际 avg=%v reviews=%d", club.AverageSatisfaction, club.TotalNumReviews)
	}
}

func TestImportService_ImportClubs_Empty(t *testing.T) {
	svc, _ := setupTestImportService()

	resp, err := svc.ImportClubs(context.Background(), nil)
	if err != nil {
		t.Fatalf("空批次应成功: %v", err)
	}
	if resp.Imported != 0 {
		t.Errorf("期望导入0条，实际=%d", resp.Imported)
	}
}
