package model

import "time"

// ClubSave 社团收藏表 — 对应 club_saves
// 与点赞同构：(club, user) 至多一行，只针对社团
type ClubSave struct {
	SaveID    string    `gorm:"column:save_id;type:uuid;primaryKey"                    json:"save_id"`
	ClubID    string    `gorm:"column:club_id;type:varchar(64);not null;uniqueIndex:uq_club_saves" json:"club_id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_club_saves"        json:"user_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                     json:"created_at"`
}

// TableName 指定表名
func (ClubSave) TableName() string { return "club_saves" }
