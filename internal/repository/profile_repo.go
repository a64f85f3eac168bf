package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
)

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	ListByIDs(ctx context.Context, userIDs []string) ([]model.UserProfile, error)
	UpsertAlias(ctx context.Context, userID, displayAlias string) error
	SetLastViewedRejectedAt(ctx context.Context, userID string, viewedAt time.Time) error
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 创建 ProfileRepository 实例
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &profile, nil
}

func (r *profileRepo) ListByIDs(ctx context.Context, userIDs []string) ([]model.UserProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var profiles []model.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return profiles, nil
}

// UpsertAlias 资料行不存在时创建（首次写别名即建档）
func (r *profileRepo) UpsertAlias(ctx context.Context, userID, displayAlias string) error {
	profile := &model.UserProfile{UserID: userID, DisplayAlias: displayAlias}
	return wrapStoreErr(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_alias", "updated_at"}),
		}).
		Create(profile).Error)
}

// SetLastViewedRejectedAt 推进未读被拒评价水位线（资料行不存在时创建）
func (r *profileRepo) SetLastViewedRejectedAt(ctx context.Context, userID string, viewedAt time.Time) error {
	profile := &model.UserProfile{UserID: userID, LastViewedRejectedAt: &viewedAt}
	return wrapStoreErr(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_viewed_rejected_at", "updated_at"}),
		}).
		Create(profile).Error)
}
