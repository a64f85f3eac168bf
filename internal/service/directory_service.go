package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kittenluv1/clubhouse-sub000/config"
	"github.com/kittenluv1/clubhouse-sub000/internal/dto"
	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
	"github.com/kittenluv1/clubhouse-sub000/pkg/redis"
)

// ── 名录模块业务错误 ──

var (
	ErrClubNotFound = errors.New("社团不存在")
)

// PageSize 目录分页固定页大小
const PageSize = 10

// DirectoryService 社团名录业务接口
type DirectoryService interface {
	SearchClubs(ctx context.Context, req *dto.ClubSearchRequest, viewerID string) ([]dto.ClubResponse, int64, int, error)
	GetClubDetail(ctx context.Context, idOrName string, viewerID string) (*dto.ClubDetailResponse, error)
	ListCategories(ctx context.Context) ([]string, error)
	RecomputeClub(ctx context.Context, clubID string) error
}

type directoryService struct {
	cfg        *config.Config
	repo       *repository.Repository
	engagement EngagementService
	rdb        *redis.Client
	logger     *zap.Logger
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(
	cfg *config.Config,
	repo *repository.Repository,
	engagement EngagementService,
	rdb *redis.Client,
	logger *zap.Logger,
) DirectoryService {
	return &directoryService{cfg: cfg, repo: repo, engagement: engagement, rdb: rdb, logger: logger}
}

// parseCategories 解析逗号分隔的分类集合
// 空项被丢弃；解析结果为空按"无过滤"处理，从不报错
func parseCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			categories = append(categories, p)
		}
	}
	return categories
}

// totalPages 分页总页数，向上取整，至少为 1
func totalPages(total int64) int {
	pages := int((total + PageSize - 1) / PageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ────────────────────── SearchClubs ──────────────────────

// SearchClubs 目录查询：过滤 → 排序 → 分页 → 附加互动数据
// 请求页码超过总页数时返回空列表，totalPages 保持按匹配总数计算的值；
// 互动聚合只针对当前页的社团 ID，保证同一请求内 ID 集一致。
func (s *directoryService) SearchClubs(ctx context.Context, req *dto.ClubSearchRequest, viewerID string) ([]dto.ClubResponse, int64, int, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	sort := req.Sort
	if sort == "" {
		sort = repository.SortByRating
	}

	q := repository.ClubQuery{
		Sort:   sort,
		Offset: (page - 1) * PageSize,
		Limit:  PageSize,
	}
	switch {
	case req.Name != "":
		q.NameTerm = req.Name
	case req.Category != "":
		q.Categories = []string{req.Category}
	default:
		q.Categories = parseCategories(req.Categories)
	}

	clubs, total, err := s.repo.Club.Search(ctx, q)
	if err != nil {
		s.logger.Error("目录查询失败", zap.Any("query", q), zap.Error(err))
		return nil, 0, 0, err
	}

	clubIDs := make([]string, len(clubs))
	for i, club := range clubs {
		clubIDs[i] = club.OrganizationID
	}

	likes := s.engagement.Aggregate(ctx, model.SubjectClub, clubIDs, viewerID)
	saved := s.viewerSavedSet(ctx, viewerID, clubIDs)

	items := make([]dto.ClubResponse, len(clubs))
	for i, club := range clubs {
		items[i] = s.toClubResponse(&club, likes[club.OrganizationID], saved[club.OrganizationID])
	}

	return items, total, totalPages(total), nil
}

// ────────────────────── GetClubDetail ──────────────────────

// GetClubDetail 社团详情：按名录 ID 或名称 slug 查找
func (s *directoryService) GetClubDetail(ctx context.Context, idOrName string, viewerID string) (*dto.ClubDetailResponse, error) {
	club, err := s.repo.Club.GetByID(ctx, idOrName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		club, err = s.repo.Club.GetByName(ctx, idOrName)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		s.logger.Error("社团查询失败", zap.String("club", idOrName), zap.Error(err))
		return nil, err
	}

	reviews, err := s.repo.Review.ListPublishedByClub(ctx, club.OrganizationID)
	if err != nil {
		s.logger.Error("已发布评价查询失败", zap.String("club_id", club.OrganizationID), zap.Error(err))
		return nil, err
	}

	clubIDs := []string{club.OrganizationID}
	clubLikes := s.engagement.Aggregate(ctx, model.SubjectClub, clubIDs, viewerID)
	saved := s.viewerSavedSet(ctx, viewerID, clubIDs)

	reviewIDs := make([]string, len(reviews))
	for i, review := range reviews {
		reviewIDs[i] = review.ReviewID
	}
	reviewLikes := s.engagement.Aggregate(ctx, model.SubjectReview, reviewIDs, viewerID)
	aliases := s.authorAliases(ctx, reviews)

	reviewItems := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewItems[i] = toReviewResponse(&review.ReviewRecord, club.OrganizationName, aliases, reviewLikes[review.ReviewID])
	}

	return &dto.ClubDetailResponse{
		Club:    s.toClubResponse(club, clubLikes[club.OrganizationID], saved[club.OrganizationID]),
		Reviews: reviewItems,
	}, nil
}

// ────────────────────── ListCategories ──────────────────────

// ListCategories 分类列表（Redis TTL 缓存，Redis 不可用时直查）
func (s *directoryService) ListCategories(ctx context.Context) ([]string, error) {
	if s.rdb != nil {
		if categories, ok := s.rdb.GetCategoryList(ctx); ok {
			return categories, nil
		}
	}

	categories, err := s.repo.Club.ListCategories(ctx)
	if err != nil {
		s.logger.Error("分类列表查询失败", zap.Error(err))
		return nil, err
	}

	if s.rdb != nil {
		ttl := s.cfg.Cache.CategoryTTL
		if ttl <= 0 {
			ttl = 10 * time.Minute
		}
		s.rdb.SetCategoryList(ctx, categories, ttl)
	}
	return categories, nil
}

// ────────────────────── RecomputeClub ──────────────────────

// RecomputeClub 管理员手工修复社团聚合（正常路径下聚合只随发布事务更新）
func (s *directoryService) RecomputeClub(ctx context.Context, clubID string) error {
	if _, err := s.repo.Club.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClubNotFound
		}
		return err
	}
	if err := s.repo.Club.RecomputeAggregates(ctx, clubID); err != nil {
		s.logger.Error("聚合重算失败", zap.String("club_id", clubID), zap.Error(err))
		return err
	}
	s.logger.Info("社团聚合已重算", zap.String("club_id", clubID))
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

// viewerSavedSet 当前用户在给定社团集合内的收藏集
// 查询失败降级为"未收藏"，与互动聚合的降级策略一致
func (s *directoryService) viewerSavedSet(ctx context.Context, viewerID string, clubIDs []string) map[string]bool {
	saved := make(map[string]bool)
	if viewerID == "" || len(clubIDs) == 0 {
		return saved
	}

	ids, err := s.repo.Save.ListUserSaved(ctx, viewerID, clubIDs)
	if err != nil {
		s.logger.Warn("用户收藏状态查询失败，状态降级为未收藏", zap.Error(err))
		return saved
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved
}

// authorAliases 批量解析评价作者别名（匿名评价不参与）
func (s *directoryService) authorAliases(ctx context.Context, reviews []model.PublishedReview) map[string]string {
	aliases := make(map[string]string)

	userIDs := make([]string, 0, len(reviews))
	seen := make(map[string]bool)
	for _, review := range reviews {
		if review.IsAnonymous || review.UserID == nil || seen[*review.UserID] {
			continue
		}
		seen[*review.UserID] = true
		userIDs = append(userIDs, *review.UserID)
	}
	if len(userIDs) == 0 {
		return aliases
	}

	profiles, err := s.repo.Profile.ListByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Warn("作者别名查询失败，别名降级为空", zap.Error(err))
		return aliases
	}
	for _, profile := range profiles {
		aliases[profile.UserID] = profile.DisplayAlias
	}
	return aliases
}

func (s *directoryService) toClubResponse(club *model.Club, likes EngagementResult, viewerSaved bool) dto.ClubResponse {
	return dto.ClubResponse{
		OrganizationID:   club.OrganizationID,
		OrganizationName: club.OrganizationName,
		Category1Name:    club.Category1Name,
		Category2Name:    club.Category2Name,
		Description:      club.Description,
		ContactEmail:     club.ContactEmail,
		WebsiteURL:       club.WebsiteURL,
		SocialURL:        club.SocialURL,

		AverageSatisfaction:    club.AverageSatisfaction,
		AverageTimeCommitment:  club.AverageTimeCommitment,
		AverageDiversity:       club.AverageDiversity,
		AverageSocialCommunity: club.AverageSocialCommunity,
		AverageCompetitiveness: club.AverageCompetitiveness,
		TotalNumReviews:        club.TotalNumReviews,

		LikeCount:   likes.Count,
		ViewerLiked: likes.ViewerEngaged,
		ViewerSaved: viewerSaved,
	}
}

// toReviewResponse 评价响应装配（匿名评价隐藏作者身份）
func toReviewResponse(record *model.ReviewRecord, organizationName string, aliases map[string]string, likes EngagementResult) dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ReviewID:              record.ReviewID,
		ClubID:                record.ClubID,
		OrganizationName:      organizationName,
		TimeCommitmentRating:  record.TimeCommitmentRating,
		DiversityRating:       record.DiversityRating,
		SocialCommunityRating: record.SocialCommunityRating,
		CompetitivenessRating: record.CompetitivenessRating,
		SatisfactionRating:    record.SatisfactionRating,
		ReviewText:            record.ReviewText,
		StartQuarter:          record.StartQuarter,
		StartYear:             record.StartYear,
		EndQuarter:            record.EndQuarter,
		EndYear:               record.EndYear,
		IsAnonymous:           record.IsAnonymous,
		CreatedAt:             record.CreatedAt.Format(time.RFC3339),
		LikeCount:             likes.Count,
		ViewerLiked:           likes.ViewerEngaged,
	}
	if !record.IsAnonymous && record.UserID != nil {
		resp.UserID = *record.UserID
		resp.AuthorAlias = aliases[*record.UserID]
	}
	return resp
}
