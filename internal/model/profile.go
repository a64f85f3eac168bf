package model

import "time"

// UserProfile 用户资料表 — 对应 user_profiles
// LastViewedRejectedAt 是"未读被拒评价"角标的水位线：
// rejected 分区中该用户 created_at 晚于此水位线的行计为未读。
type UserProfile struct {
	UserID               string     `gorm:"column:user_id;type:uuid;primaryKey"       json:"user_id"`
	DisplayAlias         string     `gorm:"type:varchar(100);not null;default:''"     json:"display_alias"`
	LastViewedRejectedAt *time.Time `gorm:"column:last_viewed_rejected_at"            json:"last_viewed_rejected_at,omitempty"`
	Timestamps
}

// TableName 指定表名
func (UserProfile) TableName() string { return "user_profiles" }
