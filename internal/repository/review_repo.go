package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
)

// ReviewRepository 评价三分区数据访问接口
// 状态流转（approve / reject / resubmit）是事务内的跨表搬移：
// 先写入目标分区，再按主键从源分区删除并检查影响行数——
// 影响 0 行说明已被并发审核者处理，整个事务回滚并返回 gorm.ErrRecordNotFound。
type ReviewRepository interface {
	CreatePending(ctx context.Context, review *model.PendingReview) error
	GetPending(ctx context.Context, reviewID string) (*model.PendingReview, error)
	ListPending(ctx context.Context, newestFirst bool) ([]model.PendingReview, error)
	Approve(ctx context.Context, reviewID string) (clubID string, err error)
	Reject(ctx context.Context, reviewID string) error
	GetRejected(ctx context.Context, reviewID string) (*model.RejectedReview, error)
	ListRejectedByUser(ctx context.Context, userID string) ([]model.RejectedReview, error)
	CountRejectedAfter(ctx context.Context, userID string, after *time.Time) (int64, error)
	Resubmit(ctx context.Context, review *model.PendingReview) error
	DeleteRejected(ctx context.Context, reviewID string) error
	ListPublishedByClub(ctx context.Context, clubID string) ([]model.PublishedReview, error)
}

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo 创建 ReviewRepository 实例
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) CreatePending(ctx context.Context, review *model.PendingReview) error {
	return wrapStoreErr(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepo) GetPending(ctx context.Context, reviewID string) (*model.PendingReview, error) {
	var review model.PendingReview
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		First(&review).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &review, nil
}

func (r *reviewRepo) ListPending(ctx context.Context, newestFirst bool) ([]model.PendingReview, error) {
	order := "created_at ASC, review_id ASC"
	if newestFirst {
		order = "created_at DESC, review_id ASC"
	}

	var reviews []model.PendingReview
	err := r.db.WithContext(ctx).Order(order).Find(&reviews).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reviews, nil
}

// Approve 发布：pending → published 搬移 + 社团聚合重算，单事务
// 两个并发 approve 只有一个能删到 pending 行，另一个回滚并得到 ErrRecordNotFound，
// 保证 published 分区不会出现重复行。
func (r *reviewRepo) Approve(ctx context.Context, reviewID string) (string, error) {
	var clubID string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行锁串行化并发审核：输家在锁释放后看到行已不存在
		var pending model.PendingReview
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("review_id = ?", reviewID).First(&pending).Error; err != nil {
			return err
		}
		clubID = pending.ClubID

		published := model.PublishedReview{ReviewRecord: pending.ReviewRecord}
		if err := tx.Create(&published).Error; err != nil {
			return err
		}

		res := tx.Where("review_id = ?", reviewID).Delete(&model.PendingReview{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 已被并发审核者处理：回滚插入，报告 NotFound
			return gorm.ErrRecordNotFound
		}

		return recomputeClubAggregates(tx, pending.ClubID)
	})
	if err != nil {
		return "", wrapStoreErr(err)
	}
	return clubID, nil
}

// Reject 拒绝：pending → rejected 搬移，单事务；被拒评价从未计入聚合，无需重算
func (r *reviewRepo) Reject(ctx context.Context, reviewID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending model.PendingReview
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("review_id = ?", reviewID).First(&pending).Error; err != nil {
			return err
		}

		rejected := model.RejectedReview{ReviewRecord: pending.ReviewRecord}
		if err := tx.Create(&rejected).Error; err != nil {
			return err
		}

		res := tx.Where("review_id = ?", reviewID).Delete(&model.PendingReview{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrapStoreErr(err)
}

func (r *reviewRepo) GetRejected(ctx context.Context, reviewID string) (*model.RejectedReview, error) {
	var review model.RejectedReview
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		First(&review).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &review, nil
}

func (r *reviewRepo) ListRejectedByUser(ctx context.Context, userID string) ([]model.RejectedReview, error) {
	var reviews []model.RejectedReview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, review_id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reviews, nil
}

func (r *reviewRepo) CountRejectedAfter(ctx context.Context, userID string, after *time.Time) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.RejectedReview{}).
		Where("user_id = ?", userID)
	if after != nil {
		db = db.Where("created_at > ?", *after)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}

// Resubmit 重新提交：rejected → pending 搬移（修订后的记录），单事务
// review.ReviewID 必须等于被拒记录的主键；搬移后主键保持不变
func (r *reviewRepo) Resubmit(ctx context.Context, review *model.PendingReview) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("review_id = ?", review.ReviewID).Delete(&model.RejectedReview{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(review).Error
	})
	return wrapStoreErr(err)
}

func (r *reviewRepo) DeleteRejected(ctx context.Context, reviewID string) error {
	res := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&model.RejectedReview{})
	if res.Error != nil {
		return wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepo) ListPublishedByClub(ctx context.Context, clubID string) ([]model.PublishedReview, error) {
	var reviews []model.PublishedReview
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("created_at DESC, review_id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return reviews, nil
}
