package dto

// ── 名录批量导入 DTO ──

// ClubImportRecord 名录导入单条记录
// 以 organization_id 为 upsert 键：已存在则覆盖描述性字段，不触碰聚合字段
type ClubImportRecord struct {
	OrganizationID   string `json:"organization_id"   binding:"required,max=64"`
	OrganizationName string `json:"organization_name" binding:"required,max=255"`
	Category1Name    string `json:"category_1_name"   binding:"max=100"`
	Category2Name    string `json:"category_2_name"   binding:"max=100"`
	Description      string `json:"description"`
	ContactEmail     string `json:"contact_email"     binding:"omitempty,email"`
	WebsiteURL       string `json:"website_url"       binding:"omitempty,url"`
	SocialURL        string `json:"social_url"        binding:"omitempty,url"`
}

// ClubImportRequest JSON 批量导入请求
type ClubImportRequest struct {
	Clubs []ClubImportRecord `json:"clubs" binding:"required,min=1,dive"`
}

// ClubImportResponse 导入结果响应
type ClubImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
