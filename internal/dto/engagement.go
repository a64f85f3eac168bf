package dto

// ── 互动模块 DTO ──

// ToggleLikeRequest 点赞/取消点赞请求
type ToggleLikeRequest struct {
	SubjectKind string `json:"subject_kind" binding:"required,oneof=club review"`
	SubjectID   string `json:"subject_id"   binding:"required"`
}

// ToggleLikeResponse 点赞切换响应
type ToggleLikeResponse struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// ToggleSaveResponse 收藏切换响应
type ToggleSaveResponse struct {
	Saved bool `json:"saved"`
}
