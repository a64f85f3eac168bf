package dto

// ── 社团名录模块 DTO ──

// ClubSearchRequest 目录查询参数
// name / category / categories 三种过滤互斥，按此优先级取第一个非空者；
// categories 为逗号分隔的分类集合，解析失败按无过滤处理（不报错）。
type ClubSearchRequest struct {
	Name       string `form:"name"`
	Category   string `form:"category"`
	Categories string `form:"categories"`
	Sort       string `form:"sort" binding:"omitempty,oneof=rating reviews name"`
	Page       int    `form:"page"`
}

// ClubResponse 社团信息响应
// 五个平均分用指针承载：NULL（无已发布评价）序列化为 null，前端渲染 N/A
type ClubResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Category1Name    string `json:"category_1_name"`
	Category2Name    string `json:"category_2_name"`
	Description      string `json:"description,omitempty"`
	ContactEmail     string `json:"contact_email,omitempty"`
	WebsiteURL       string `json:"website_url,omitempty"`
	SocialURL        string `json:"social_url,omitempty"`

	AverageSatisfaction    *float64 `json:"average_satisfaction"`
	AverageTimeCommitment  *float64 `json:"average_time_commitment"`
	AverageDiversity       *float64 `json:"average_diversity"`
	AverageSocialCommunity *float64 `json:"average_social_community"`
	AverageCompetitiveness *float64 `json:"average_competitiveness"`
	TotalNumReviews        int      `json:"total_num_reviews"`

	LikeCount   int64 `json:"like_count"`
	ViewerLiked bool  `json:"viewer_liked"`
	ViewerSaved bool  `json:"viewer_saved"`
}

// ClubDetailResponse 社团详情响应（含已发布评价）
type ClubDetailResponse struct {
	Club    ClubResponse     `json:"club"`
	Reviews []ReviewResponse `json:"reviews"`
}

// CategoryListResponse 分类列表响应
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
