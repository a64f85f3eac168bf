package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
)

// LikeRepository 点赞关系数据访问接口（社团点赞与评价点赞分表同构）
// CountBySubjects / ListUserLiked 各自是一条批量查询，
// 互动聚合对任意大小的主体批次保持至多两次存储往返。
type LikeRepository interface {
	CountBySubjects(ctx context.Context, kind model.SubjectKind, subjectIDs []string) (map[string]int64, error)
	ListUserLiked(ctx context.Context, kind model.SubjectKind, userID string, subjectIDs []string) ([]string, error)
	Exists(ctx context.Context, kind model.SubjectKind, subjectID, userID string) (bool, error)
	Create(ctx context.Context, kind model.SubjectKind, subjectID, userID string) error
	Delete(ctx context.Context, kind model.SubjectKind, subjectID, userID string) error
	CountBySubject(ctx context.Context, kind model.SubjectKind, subjectID string) (int64, error)
}

type likeRepo struct {
	db *gorm.DB
}

// NewLikeRepo 创建 LikeRepository 实例
func NewLikeRepo(db *gorm.DB) LikeRepository {
	return &likeRepo{db: db}
}

// likeTable 主体类型到表名与主体列的映射
func likeTable(kind model.SubjectKind) (table, subjectCol string, err error) {
	switch kind {
	case model.SubjectClub:
		return "club_likes", "club_id", nil
	case model.SubjectReview:
		return "review_likes", "review_id", nil
	default:
		return "", "", fmt.Errorf("未知的点赞主体类型: %q", kind)
	}
}

// subjectCount 分组计数扫描目标
type subjectCount struct {
	SubjectID string `gorm:"column:subject_id"`
	Count     int64  `gorm:"column:count"`
}

func (r *likeRepo) CountBySubjects(ctx context.Context, kind model.SubjectKind, subjectIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return counts, nil
	}

	table, col, err := likeTable(kind)
	if err != nil {
		return nil, err
	}

	var rows []subjectCount
	err = r.db.WithContext(ctx).
		Table(table).
		Select(col+" AS subject_id, COUNT(*) AS count").
		Where(col+" IN ?", subjectIDs).
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	for _, row := range rows {
		counts[row.SubjectID] = row.Count
	}
	return counts, nil
}

func (r *likeRepo) ListUserLiked(ctx context.Context, kind model.SubjectKind, userID string, subjectIDs []string) ([]string, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}

	table, col, err := likeTable(kind)
	if err != nil {
		return nil, err
	}

	var liked []string
	err = r.db.WithContext(ctx).
		Table(table).
		Select(col).
		Where("user_id = ?", userID).
		Where(col+" IN ?", subjectIDs).
		Scan(&liked).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return liked, nil
}

func (r *likeRepo) Exists(ctx context.Context, kind model.SubjectKind, subjectID, userID string) (bool, error) {
	table, col, err := likeTable(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Table(table).
		Where(col+" = ? AND user_id = ?", subjectID, userID).
		Count(&count).Error
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return count > 0, nil
}

// Create 幂等插入：(subject, user) 唯一约束冲突按无操作成功处理
func (r *likeRepo) Create(ctx context.Context, kind model.SubjectKind, subjectID, userID string) error {
	onConflict := clause.OnConflict{DoNothing: true}

	switch kind {
	case model.SubjectClub:
		like := &model.ClubLike{LikeID: uuid.New().String(), ClubID: subjectID, UserID: userID}
		return wrapStoreErr(r.db.WithContext(ctx).Clauses(onConflict).Create(like).Error)
	case model.SubjectReview:
		like := &model.ReviewLike{LikeID: uuid.New().String(), ReviewID: subjectID, UserID: userID}
		return wrapStoreErr(r.db.WithContext(ctx).Clauses(onConflict).Create(like).Error)
	default:
		return fmt.Errorf("未知的点赞主体类型: %q", kind)
	}
}

func (r *likeRepo) Delete(ctx context.Context, kind model.SubjectKind, subjectID, userID string) error {
	switch kind {
	case model.SubjectClub:
		return wrapStoreErr(r.db.WithContext(ctx).
			Where("club_id = ? AND user_id = ?", subjectID, userID).
			Delete(&model.ClubLike{}).Error)
	case model.SubjectReview:
		return wrapStoreErr(r.db.WithContext(ctx).
			Where("review_id = ? AND user_id = ?", subjectID, userID).
			Delete(&model.ReviewLike{}).Error)
	default:
		return fmt.Errorf("未知的点赞主体类型: %q", kind)
	}
}

func (r *likeRepo) CountBySubject(ctx context.Context, kind model.SubjectKind, subjectID string) (int64, error) {
	table, col, err := likeTable(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Table(table).
		Where(col+" = ?", subjectID).
		Count(&count).Error
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}
