package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
)

// ── 互动模块业务错误 ──

var (
	ErrLikeSubjectNotFound = errors.New("点赞对象不存在")
)

// EngagementResult 单个主体的互动聚合
type EngagementResult struct {
	Count         int64
	ViewerEngaged bool
}

// EngagementService 互动业务接口
// Aggregate 对任意大小的主体批次至多发起两次存储查询：
// 一次分组计数 + （有登录用户时）一次该用户的点赞行查询。
type EngagementService interface {
	Aggregate(ctx context.Context, kind model.SubjectKind, subjectIDs []string, viewerID string) map[string]EngagementResult
	ToggleLike(ctx context.Context, kind model.SubjectKind, subjectID, userID string) (*dto.ToggleLikeResponse, error)
	ToggleSave(ctx context.Context, clubID, userID string) (*dto.ToggleSaveResponse, error)
}

type engagementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEngagementService 创建 EngagementService 实例
func NewEngagementService(repo *repository.Repository, logger *zap.Logger) EngagementService {
	return &engagementService{repo: repo, logger: logger}
}

// Aggregate 批量互动聚合，纯读取
// 每个输入 ID 都有结果项（count=0 也在内），缺失主体不会被静默丢弃；
// 查询失败降级为 count=0 / viewerEngaged=false，记日志而不向上抛错。
func (s *engagementService) Aggregate(ctx context.Context, kind model.SubjectKind, subjectIDs []string, viewerID string) map[string]EngagementResult {
	result := make(map[string]EngagementResult, len(subjectIDs))
	for _, id := range subjectIDs {
		result[id] = EngagementResult{}
	}
	if len(subjectIDs) == 0 {
		return result
	}

	counts, err := s.repo.Like.CountBySubjects(ctx, kind, subjectIDs)
	if err != nil {
		s.logger.Warn("互动计数查询失败，计数降级为 0",
			zap.String("kind", string(kind)),
			zap.Int("subjects", len(subjectIDs)),
			zap.Error(err),
		)
		counts = nil
	}
	for id, count := range counts {
		result[id] = EngagementResult{Count: count}
	}

	if viewerID == "" {
		return result
	}

	liked, err := s.repo.Like.ListUserLiked(ctx, kind, viewerID, subjectIDs)
	if err != nil {
		s.logger.Warn("用户点赞状态查询失败，状态降级为未点赞",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return result
	}
	for _, id := range liked {
		entry := result[id]
		entry.ViewerEngaged = true
		result[id] = entry
	}

	return result
}

// ToggleLike 点赞/取消点赞切换
// 重复点赞是无操作成功（唯一约束冲突被幂等吸收），调用方视角始终幂等
func (s *engagementService) ToggleLike(ctx context.Context, kind model.SubjectKind, subjectID, userID string) (*dto.ToggleLikeResponse, error) {
	if kind == model.SubjectClub {
		if _, err := s.repo.Club.GetByID(ctx, subjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLikeSubjectNotFound
			}
			s.logger.Error("点赞前社团查询失败", zap.String("club_id", subjectID), zap.Error(err))
			return nil, err
		}
	}

	exists, err := s.repo.Like.Exists(ctx, kind, subjectID, userID)
	if err != nil {
		s.logger.Error("点赞状态查询失败", zap.String("subject_id", subjectID), zap.Error(err))
		return nil, err
	}

	liked := !exists
	if exists {
		err = s.repo.Like.Delete(ctx, kind, subjectID, userID)
	} else {
		err = s.repo.Like.Create(ctx, kind, subjectID, userID)
	}
	if err != nil {
		s.logger.Error("点赞切换失败",
			zap.String("kind", string(kind)),
			zap.String("subject_id", subjectID),
			zap.Error(err),
		)
		return nil, err
	}

	count, err := s.repo.Like.CountBySubject(ctx, kind, subjectID)
	if err != nil {
		s.logger.Warn("点赞计数查询失败，计数降级为 0", zap.Error(err))
		count = 0
	}

	return &dto.ToggleLikeResponse{Liked: liked, Count: count}, nil
}

// ToggleSave 收藏/取消收藏切换（仅社团）
func (s *engagementService) ToggleSave(ctx context.Context, clubID, userID string) (*dto.ToggleSaveResponse, error) {
	if _, err := s.repo.Club.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLikeSubjectNotFound
		}
		s.logger.Error("收藏前社团查询失败", zap.String("club_id", clubID), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.Save.Exists(ctx, clubID, userID)
	if err != nil {
		s.logger.Error("收藏状态查询失败", zap.String("club_id", clubID), zap.Error(err))
		return nil, err
	}

	saved := !exists
	if exists {
		err = s.repo.Save.Delete(ctx, clubID, userID)
	} else {
		err = s.repo.Save.Create(ctx, clubID, userID)
	}
	if err != nil {
		s.logger.Error("收藏切换失败", zap.String("club_id", clubID), zap.Error(err))
		return nil, err
	}

	return &dto.ToggleSaveResponse{Saved: saved}, nil
}
