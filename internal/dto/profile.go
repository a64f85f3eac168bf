package dto

// ── 用户资料模块 DTO ──

// UpdateAliasRequest 更新显示别名请求
type UpdateAliasRequest struct {
	DisplayAlias string `json:"display_alias" binding:"required,min=2,max=100"`
}

// ProfileResponse 用户资料响应
// UnreadRejectedCount = rejected 分区中 created_at 晚于水位线的行数
type ProfileResponse struct {
	UserID               string `json:"user_id"`
	DisplayAlias         string `json:"display_alias"`
	UnreadRejectedCount  int64  `json:"unread_rejected_count"`
	LastViewedRejectedAt string `json:"last_viewed_rejected_at,omitempty"`
}
