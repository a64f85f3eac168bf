package handler

import "github.com/kittenluv1/clubhouse-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Club       *ClubHandler
	Review     *ReviewHandler
	Engagement *EngagementHandler
	Profile    *ProfileHandler
	Import     *ImportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Club:       NewClubHandler(svc.Directory),
		Review:     NewReviewHandler(svc.Moderation),
		Engagement: NewEngagementHandler(svc.Engagement),
		Profile:    NewProfileHandler(svc.Profile),
		Import:     NewImportHandler(svc.Import),
	}
}
