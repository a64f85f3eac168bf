package model

import "time"

// 评价在任意时刻只存在于 pending / published / rejected 三张分区表之一。
// 状态流转是跨表搬移（事务内 insert + delete），不是字段更新；
// review_id 在搬移中保持不变，created_at 随记录一起搬移。

// ReviewRecord 三张分区表共享的列集
// 四个维度评分可空（评价者可以只评部分维度），总体满意度必填。
type ReviewRecord struct {
	ReviewID string  `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	ClubID   string  `gorm:"column:club_id;type:varchar(64);not null;index" json:"club_id"`
	UserID   *string `gorm:"column:user_id;type:uuid" json:"user_id,omitempty"`

	TimeCommitmentRating  *int `gorm:"type:smallint" json:"time_commitment_rating"`
	DiversityRating       *int `gorm:"type:smallint" json:"diversity_rating"`
	SocialCommunityRating *int `gorm:"type:smallint" json:"social_community_rating"`
	CompetitivenessRating *int `gorm:"type:smallint" json:"competitiveness_rating"`
	SatisfactionRating    int  `gorm:"type:smallint;not null" json:"satisfaction_rating"`

	ReviewText   string `gorm:"type:text;not null;default:''"        json:"review_text"`
	StartQuarter string `gorm:"type:varchar(10);not null;default:''" json:"start_quarter"`
	StartYear    int    `gorm:"not null;default:0"                   json:"start_year"`
	EndQuarter   string `gorm:"type:varchar(10);not null;default:''" json:"end_quarter"`
	EndYear      int    `gorm:"not null;default:0"                   json:"end_year"`
	IsAnonymous  bool   `gorm:"not null;default:false"               json:"is_anonymous"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PendingReview 待审核分区 — 对应 pending_reviews
type PendingReview struct {
	ReviewRecord `gorm:"embedded"`
}

// TableName 指定表名
func (PendingReview) TableName() string { return "pending_reviews" }

// PublishedReview 已发布分区 — 对应 published_reviews
type PublishedReview struct {
	ReviewRecord `gorm:"embedded"`
}

// TableName 指定表名
func (PublishedReview) TableName() string { return "published_reviews" }

// RejectedReview 已拒绝分区 — 对应 rejected_reviews
type RejectedReview struct {
	ReviewRecord `gorm:"embedded"`
}

// TableName 指定表名
func (RejectedReview) TableName() string { return "rejected_reviews" }
