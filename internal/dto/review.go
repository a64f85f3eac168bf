package dto

// ── 评价模块 DTO ──

// SubmitReviewRequest 提交评价请求（进入待审核分区）
// 四个维度评分可以只评部分；总体满意度必填
type SubmitReviewRequest struct {
	ClubID                string `json:"club_id"                 binding:"required"`
	TimeCommitmentRating  *int   `json:"time_commitment_rating"  binding:"omitempty,min=1,max=5"`
	DiversityRating       *int   `json:"diversity_rating"        binding:"omitempty,min=1,max=5"`
	SocialCommunityRating *int   `json:"social_community_rating" binding:"omitempty,min=1,max=5"`
	CompetitivenessRating *int   `json:"competitiveness_rating"  binding:"omitempty,min=1,max=5"`
	SatisfactionRating    int    `json:"satisfaction_rating"     binding:"required,min=1,max=5"`
	ReviewText            string `json:"review_text"             binding:"max=5000"`
	StartQuarter          string `json:"start_quarter"           binding:"omitempty,oneof=Fall Winter Spring Summer"`
	StartYear             int    `json:"start_year"              binding:"omitempty,min=2000,max=2100"`
	EndQuarter            string `json:"end_quarter"             binding:"omitempty,oneof=Fall Winter Spring Summer"`
	EndYear               int    `json:"end_year"                binding:"omitempty,min=2000,max=2100"`
	IsAnonymous           bool   `json:"is_anonymous"`
}

// ResubmitReviewRequest 被拒评价重新提交请求（修订后回到待审核分区）
type ResubmitReviewRequest struct {
	TimeCommitmentRating  *int   `json:"time_commitment_rating"  binding:"omitempty,min=1,max=5"`
	DiversityRating       *int   `json:"diversity_rating"        binding:"omitempty,min=1,max=5"`
	SocialCommunityRating *int   `json:"social_community_rating" binding:"omitempty,min=1,max=5"`
	CompetitivenessRating *int   `json:"competitiveness_rating"  binding:"omitempty,min=1,max=5"`
	SatisfactionRating    int    `json:"satisfaction_rating"     binding:"required,min=1,max=5"`
	ReviewText            string `json:"review_text"             binding:"max=5000"`
	StartQuarter          string `json:"start_quarter"           binding:"omitempty,oneof=Fall Winter Spring Summer"`
	StartYear             int    `json:"start_year"              binding:"omitempty,min=2000,max=2100"`
	EndQuarter            string `json:"end_quarter"             binding:"omitempty,oneof=Fall Winter Spring Summer"`
	EndYear               int    `json:"end_year"                binding:"omitempty,min=2000,max=2100"`
	IsAnonymous           bool   `json:"is_anonymous"`
}

// ModerateReviewRequest 审核决定请求
type ModerateReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// PendingListRequest 待审核列表查询参数
type PendingListRequest struct {
	Sort string `form:"sort" binding:"omitempty,oneof=oldest newest"`
}

// SubmitReviewResponse 提交评价响应
type SubmitReviewResponse struct {
	ReviewID string `json:"review_id"`
}

// ReviewResponse 评价信息响应
// 匿名评价不返回 user_id 与作者别名
type ReviewResponse struct {
	ReviewID              string `json:"review_id"`
	ClubID                string `json:"club_id"`
	OrganizationName      string `json:"organization_name,omitempty"`
	UserID                string `json:"user_id,omitempty"`
	AuthorAlias           string `json:"author_alias,omitempty"`
	TimeCommitmentRating  *int   `json:"time_commitment_rating"`
	DiversityRating       *int   `json:"diversity_rating"`
	SocialCommunityRating *int   `json:"social_community_rating"`
	CompetitivenessRating *int   `json:"competitiveness_rating"`
	SatisfactionRating    int    `json:"satisfaction_rating"`
	ReviewText            string `json:"review_text"`
	StartQuarter          string `json:"start_quarter,omitempty"`
	StartYear             int    `json:"start_year,omitempty"`
	EndQuarter            string `json:"end_quarter,omitempty"`
	EndYear               int    `json:"end_year,omitempty"`
	IsAnonymous           bool   `json:"is_anonymous"`
	CreatedAt             string `json:"created_at"`

	LikeCount   int64 `json:"like_count"`
	ViewerLiked bool  `json:"viewer_liked"`
}
