package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
)

// ── 审核模块业务错误 ──

var (
	ErrReviewNotFound  = errors.New("评价不存在或已被处理")
	ErrNotReviewAuthor = errors.New("只有评价作者本人可以执行此操作")
	ErrInvalidDecision = errors.New("未知的审核决定")
)

// 审核决定
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ModerationService 评价审核业务接口
// 状态机：pending --approve--> published（含聚合重算）、pending --reject--> rejected、
// rejected --resubmit--> pending（作者本人）、rejected --discard--> 删除（作者本人）。
// published 无后续流转。
type ModerationService interface {
	Submit(ctx context.Context, req *dto.SubmitReviewRequest, userID string) (*dto.SubmitReviewResponse, error)
	ListPending(ctx context.Context, req *dto.PendingListRequest) ([]dto.ReviewResponse, error)
	Moderate(ctx context.Context, reviewID, decision, moderatorID string) error
	ListRejectedForUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error)
	Resubmit(ctx context.Context, reviewID string, req *dto.ResubmitReviewRequest, callerID string) error
	Discard(ctx context.Context, reviewID, callerID string) error
}

type moderationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewModerationService 创建 ModerationService 实例
func NewModerationService(repo *repository.Repository, logger *zap.Logger) ModerationService {
	return &moderationService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

// Submit 提交评价，进入待审核分区
// userID 为空表示匿名提交（user_id 存 NULL，无法重新提交被拒稿）
func (s *moderationService) Submit(ctx context.Context, req *dto.SubmitReviewRequest, userID string) (*dto.SubmitReviewResponse, error) {
	if _, err := s.repo.Club.GetByID(ctx, req.ClubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		s.logger.Error("提交评价前社团查询失败", zap.String("club_id", req.ClubID), zap.Error(err))
		return nil, err
	}

	pending := &model.PendingReview{ReviewRecord: model.ReviewRecord{
		ReviewID:              uuid.New().String(),
		ClubID:                req.ClubID,
		TimeCommitmentRating:  req.TimeCommitmentRating,
		DiversityRating:       req.DiversityRating,
		SocialCommunityRating: req.SocialCommunityRating,
		CompetitivenessRating: req.CompetitivenessRating,
		SatisfactionRating:    req.SatisfactionRating,
		ReviewText:            req.ReviewText,
		StartQuarter:          req.StartQuarter,
		StartYear:             req.StartYear,
		EndQuarter:            req.EndQuarter,
		EndYear:               req.EndYear,
		IsAnonymous:           req.IsAnonymous,
		CreatedAt:             time.Now(),
	}}
	if userID != "" {
		pending.UserID = &userID
	}

	if err := s.repo.Review.CreatePending(ctx, pending); err != nil {
		s.logger.Error("创建待审核评价失败", zap.String("club_id", req.ClubID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("评价已提交待审核",
		zap.String("review_id", pending.ReviewID),
		zap.String("club_id", req.ClubID),
	)
	return &dto.SubmitReviewResponse{ReviewID: pending.ReviewID}, nil
}

// ────────────────────── ListPending ──────────────────────

func (s *moderationService) ListPending(ctx context.Context, req *dto.PendingListRequest) ([]dto.ReviewResponse, error) {
	reviews, err := s.repo.Review.ListPending(ctx, req.Sort == "newest")
	if err != nil {
		s.logger.Error("待审核列表查询失败", zap.Error(err))
		return nil, err
	}

	names := s.clubNames(ctx, pendingClubIDs(reviews))

	items := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		items[i] = toReviewResponse(&review.ReviewRecord, names[review.ClubID], nil, EngagementResult{})
	}
	return items, nil
}

// ────────────────────── Moderate ──────────────────────

// Moderate 执行审核决定
// approve：pending → published 搬移 + 社团聚合重算（仓储层单事务）；
// reject：pending → rejected 搬移，无聚合重算。
// 目标评价已不在待审核分区（被并发审核者处理）时返回 ErrReviewNotFound。
func (s *moderationService) Moderate(ctx context.Context, reviewID, decision, moderatorID string) error {
	switch decision {
	case DecisionApprove:
		clubID, err := s.repo.Review.Approve(ctx, reviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			s.logger.Error("评价发布失败", zap.String("review_id", reviewID), zap.Error(err))
			return err
		}
		s.logger.Info("评价已发布",
			zap.String("review_id", reviewID),
			zap.String("club_id", clubID),
			zap.String("moderator_id", moderatorID),
		)
		return nil

	case DecisionReject:
		if err := s.repo.Review.Reject(ctx, reviewID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			s.logger.Error("评价拒绝失败", zap.String("review_id", reviewID), zap.Error(err))
			return err
		}
		s.logger.Info("评价已拒绝",
			zap.String("review_id", reviewID),
			zap.String("moderator_id", moderatorID),
		)
		return nil

	default:
		return ErrInvalidDecision
	}
}

// ────────────────────── ListRejectedForUser ──────────────────────

func (s *moderationService) ListRejectedForUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error) {
	reviews, err := s.repo.Review.ListRejectedByUser(ctx, userID)
	if err != nil {
		s.logger.Error("被拒列表查询失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	clubIDs := make([]string, 0, len(reviews))
	for _, review := range reviews {
		clubIDs = append(clubIDs, review.ClubID)
	}
	names := s.clubNames(ctx, clubIDs)

	items := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		items[i] = toReviewResponse(&review.ReviewRecord, names[review.ClubID], nil, EngagementResult{})
	}
	return items, nil
}

// ────────────────────── Resubmit ──────────────────────

// Resubmit 被拒评价修订后重新提交（唯一不需要审核员权限的流转）
// 要求调用者是该评价的作者本人；review_id 保持不变，created_at 取重新提交时刻
func (s *moderationService) Resubmit(ctx context.Context, reviewID string, req *dto.ResubmitReviewRequest, callerID string) error {
	rejected, err := s.repo.Review.GetRejected(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("被拒评价查询失败", zap.String("review_id", reviewID), zap.Error(err))
		return err
	}
	if rejected.UserID == nil || *rejected.UserID != callerID {
		return ErrNotReviewAuthor
	}

	revised := &model.PendingReview{ReviewRecord: model.ReviewRecord{
		ReviewID:              rejected.ReviewID,
		ClubID:                rejected.ClubID,
		UserID:                rejected.UserID,
		TimeCommitmentRating:  req.TimeCommitmentRating,
		DiversityRating:       req.DiversityRating,
		SocialCommunityRating: req.SocialCommunityRating,
		CompetitivenessRating: req.CompetitivenessRating,
		SatisfactionRating:    req.SatisfactionRating,
		ReviewText:            req.ReviewText,
		StartQuarter:          req.StartQuarter,
		StartYear:             req.StartYear,
		EndQuarter:            req.EndQuarter,
		EndYear:               req.EndYear,
		IsAnonymous:           req.IsAnonymous,
		CreatedAt:             time.Now(),
	}}

	if err := s.repo.Review.Resubmit(ctx, revised); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("评价重新提交失败", zap.String("review_id", reviewID), zap.Error(err))
		return err
	}

	s.logger.Info("被拒评价已重新提交", zap.String("review_id", reviewID))
	return nil
}

// ────────────────────── Discard ──────────────────────

// Discard 作者永久删除被拒评价，无后续状态
func (s *moderationService) Discard(ctx context.Context, reviewID, callerID string) error {
	rejected, err := s.repo.Review.GetRejected(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("被拒评价查询失败", zap.String("review_id", reviewID), zap.Error(err))
		return err
	}
	if rejected.UserID == nil || *rejected.UserID != callerID {
		return ErrNotReviewAuthor
	}

	if err := s.repo.Review.DeleteRejected(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("被拒评价删除失败", zap.String("review_id", reviewID), zap.Error(err))
		return err
	}

	s.logger.Info("被拒评价已删除", zap.String("review_id", reviewID))
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

func pendingClubIDs(reviews []model.PendingReview) []string {
	ids := make([]string, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.ClubID)
	}
	return ids
}

// clubNames 批量解析社团名称（查询失败降级为空名）
func (s *moderationService) clubNames(ctx context.Context, clubIDs []string) map[string]string {
	names := make(map[string]string)
	if len(clubIDs) == 0 {
		return names
	}

	clubs, err := s.repo.Club.ListByIDs(ctx, clubIDs)
	if err != nil {
		s.logger.Warn("社团名称批量查询失败，名称降级为空", zap.Error(err))
		return names
	}
	for _, club := range clubs {
		names[club.OrganizationID] = club.OrganizationName
	}
	return names
}
