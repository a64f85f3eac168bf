package service

import (
	"go.uber.org/zap"

	"github.com/kittenluv1/clubhouse-sub000/config"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
	"github.com/kittenluv1/clubhouse-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Directory  DirectoryService
	Engagement EngagementService
	Moderation ModerationService
	Profile    ProfileService
	Import     ImportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（Redis 降级运行，分类缓存关闭）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	engagement := NewEngagementService(repo, logger)
	return &Service{
		Engagement: engagement,
		Directory:  NewDirectoryService(cfg, repo, engagement, rdb, logger),
		Moderation: NewModerationService(repo, logger),
		Profile:    NewProfileService(repo, logger),
		Import:     NewImportService(repo, logger),
	}
}
