package model

import "time"

// 点赞关系表：(subject, user) 至多一行，显式点赞创建、取消点赞删除，从不原地更新。

// SubjectKind 点赞主体类型
type SubjectKind string

const (
	SubjectClub   SubjectKind = "club"
	SubjectReview SubjectKind = "review"
)

// ClubLike 社团点赞表 — 对应 club_likes
type ClubLike struct {
	LikeID    string    `gorm:"column:like_id;type:uuid;primaryKey"                    json:"like_id"`
	ClubID    string    `gorm:"column:club_id;type:varchar(64);not null;uniqueIndex:uq_club_likes" json:"club_id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_club_likes"        json:"user_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                     json:"created_at"`
}

// TableName 指定表名
func (ClubLike) TableName() string { return "club_likes" }

// ReviewLike 评价点赞表 — 对应 review_likes
type ReviewLike struct {
	LikeID    string    `gorm:"column:like_id;type:uuid;primaryKey"                       json:"like_id"`
	ReviewID  string    `gorm:"column:review_id;type:uuid;not null;uniqueIndex:uq_review_likes" json:"review_id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_review_likes"   json:"user_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                        json:"created_at"`
}

// TableName 指定表名
func (ReviewLike) TableName() string { return "review_likes" }
