package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
)

// ── 排序模式 ──

const (
	SortByRating  = "rating"  // average_satisfaction 降序
	SortByReviews = "reviews" // total_num_reviews 降序
	SortByName    = "name"    // organization_name 升序
)

// ClubQuery 目录查询条件
// NameTerm 与 Categories 互斥（Service 层保证）；Categories 为单分类时长度为 1
type ClubQuery struct {
	NameTerm   string
	Categories []string
	Sort       string
	Offset     int
	Limit      int
}

// ClubRepository 社团数据访问接口
type ClubRepository interface {
	Search(ctx context.Context, q ClubQuery) ([]model.Club, int64, error)
	GetByID(ctx context.Context, organizationID string) (*model.Club, error)
	GetByName(ctx context.Context, organizationName string) (*model.Club, error)
	ListByIDs(ctx context.Context, organizationIDs []string) ([]model.Club, error)
	Upsert(ctx context.Context, clubs []model.Club) error
	ListCategories(ctx context.Context) ([]string, error)
	RecomputeAggregates(ctx context.Context, clubID string) error
}

type clubRepo struct {
	db *gorm.DB
}

// NewClubRepo 创建 ClubRepository 实例
func NewClubRepo(db *gorm.DB) ClubRepository {
	return &clubRepo{db: db}
}

// orderClause 构造排序子句
// 主排序后依次追加 name 升序（主排序为 name 时跳过）和 organization_id 升序，
// 保证全序，从而保证并列主键值下的分页稳定
func orderClause(sort string) string {
	switch sort {
	case SortByReviews:
		return "total_num_reviews DESC NULLS LAST, organization_name ASC, organization_id ASC"
	case SortByName:
		return "organization_name ASC, organization_id ASC"
	default:
		return "average_satisfaction DESC NULLS LAST, organization_name ASC, organization_id ASC"
	}
}

// categoryClause 构造分类过滤子句
// 任一请求分类与任一分类列的不区分大小写包含匹配即命中
// （请求分类 × 两个分类列 的笛卡尔积逻辑 OR）
func categoryClause(categories []string) (string, []interface{}) {
	if len(categories) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(categories)*2)
	args := make([]interface{}, 0, len(categories)*2)
	for _, cat := range categories {
		pattern := "%" + cat + "%"
		conds = append(conds, "category_1_name ILIKE ?", "category_2_name ILIKE ?")
		args = append(args, pattern, pattern)
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

func (r *clubRepo) applyFilter(db *gorm.DB, q ClubQuery) *gorm.DB {
	if q.NameTerm != "" {
		return db.Where("organization_name ILIKE ?", "%"+q.NameTerm+"%")
	}
	if cond, args := categoryClause(q.Categories); cond != "" {
		return db.Where(cond, args...)
	}
	return db
}

func (r *clubRepo) Search(ctx context.Context, q ClubQuery) ([]model.Club, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Model(&model.Club{}), q)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	var clubs []model.Club
	err := base.
		Order(orderClause(q.Sort)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&clubs).Error
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return clubs, total, nil
}

func (r *clubRepo) GetByID(ctx context.Context, organizationID string) (*model.Club, error) {
	var club model.Club
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		First(&club).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &club, nil
}

func (r *clubRepo) GetByName(ctx context.Context, organizationName string) (*model.Club, error) {
	var club model.Club
	err := r.db.WithContext(ctx).
		Where("organization_name = ?", organizationName).
		First(&club).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &club, nil
}

func (r *clubRepo) ListByIDs(ctx context.Context, organizationIDs []string) ([]model.Club, error) {
	if len(organizationIDs) == 0 {
		return nil, nil
	}

	var clubs []model.Club
	err := r.db.WithContext(ctx).
		Where("organization_id IN ?", organizationIDs).
		Find(&clubs).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return clubs, nil
}

// Upsert 批量导入：按 organization_id 冲突覆盖描述性字段，不触碰聚合字段
func (r *clubRepo) Upsert(ctx context.Context, clubs []model.Club) error {
	if len(clubs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"organization_name",
				"category_1_name",
				"category_2_name",
				"description",
				"contact_email",
				"website_url",
				"social_url",
				"updated_at",
			}),
		}).
		Create(&clubs).Error
	return wrapStoreErr(err)
}

func (r *clubRepo) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT category_1_name AS category FROM clubs WHERE category_1_name <> ''
		UNION
		SELECT DISTINCT category_2_name AS category FROM clubs WHERE category_2_name <> ''
		ORDER BY category ASC`).
		Scan(&categories).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return categories, nil
}

func (r *clubRepo) RecomputeAggregates(ctx context.Context, clubID string) error {
	return wrapStoreErr(recomputeClubAggregates(r.db.WithContext(ctx), clubID))
}

// recomputeClubAggregates 按已发布评价集重算社团聚合字段
// 各维度平均值忽略该维度为 NULL 的评价；零条已发布评价时五个平均值为 NULL、计数为 0。
// 发布事务内也调用此函数，保证聚合写入与发布处于同一事务边界。
func recomputeClubAggregates(tx *gorm.DB, clubID string) error {
	return tx.Exec(`
		UPDATE clubs SET
			average_satisfaction     = s.avg_satisfaction,
			average_time_commitment  = s.avg_time_commitment,
			average_diversity        = s.avg_diversity,
			average_social_community = s.avg_social_community,
			average_competitiveness  = s.avg_competitiveness,
			total_num_reviews        = s.review_count,
			updated_at               = CURRENT_TIMESTAMP
		FROM (
			SELECT
				CAST(AVG(satisfaction_rating)     AS numeric(3,2)) AS avg_satisfaction,
				CAST(AVG(time_commitment_rating)  AS numeric(3,2)) AS avg_time_commitment,
				CAST(AVG(diversity_rating)        AS numeric(3,2)) AS avg_diversity,
				CAST(AVG(social_community_rating) AS numeric(3,2)) AS avg_social_community,
				CAST(AVG(competitiveness_rating)  AS numeric(3,2)) AS avg_competitiveness,
				COUNT(*)                                           AS review_count
			FROM published_reviews
			WHERE club_id = ?
		) s
		WHERE organization_id = ?`, clubID, clubID).Error
}
