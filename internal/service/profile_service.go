package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
)

// ProfileService 用户资料业务接口
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateAlias(ctx context.Context, userID string, req *dto.UpdateAliasRequest) (*dto.ProfileResponse, error)
	MarkRejectedViewed(ctx context.Context, userID string) error
}

type profileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

// GetProfile 用户资料 + 未读被拒评价角标
// 资料行不存在按空资料处理（首次写入时建档）；
// 角标 = rejected 分区中该用户 created_at 晚于水位线的行数
func (s *profileService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	resp := &dto.ProfileResponse{UserID: userID}

	profile, err := s.repo.Profile.Get(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("用户资料查询失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	var watermark *time.Time
	if profile != nil {
		resp.DisplayAlias = profile.DisplayAlias
		watermark = profile.LastViewedRejectedAt
		if watermark != nil {
			resp.LastViewedRejectedAt = watermark.Format(time.RFC3339)
		}
	}

	unread, err := s.repo.Review.CountRejectedAfter(ctx, userID, watermark)
	if err != nil {
		s.logger.Warn("未读被拒评价计数失败，角标降级为 0", zap.String("user_id", userID), zap.Error(err))
		unread = 0
	}
	resp.UnreadRejectedCount = unread

	return resp, nil
}

// UpdateAlias 更新显示别名（资料行不存在时创建）
func (s *profileService) UpdateAlias(ctx context.Context, userID string, req *dto.UpdateAliasRequest) (*dto.ProfileResponse, error) {
	if err := s.repo.Profile.UpsertAlias(ctx, userID, req.DisplayAlias); err != nil {
		s.logger.Error("更新别名失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// MarkRejectedViewed 推进未读被拒评价水位线到当前时刻
func (s *profileService) MarkRejectedViewed(ctx context.Context, userID string) error {
	if err := s.repo.Profile.SetLastViewedRejectedAt(ctx, userID, time.Now()); err != nil {
		s.logger.Error("推进被拒评价水位线失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
