package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
)

// SaveRepository 社团收藏数据访问接口
type SaveRepository interface {
	Exists(ctx context.Context, clubID, userID string) (bool, error)
	Create(ctx context.Context, clubID, userID string) error
	Delete(ctx context.Context, clubID, userID string) error
	ListUserSaved(ctx context.Context, userID string, clubIDs []string) ([]string, error)
}

type saveRepo struct {
	db *gorm.DB
}

// NewSaveRepo 创建 SaveRepository 实例
func NewSaveRepo(db *gorm.DB) SaveRepository {
	return &saveRepo{db: db}
}

func (r *saveRepo) Exists(ctx context.Context, clubID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClubSave{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return count > 0, nil
}

// Create 幂等插入：(club, user) 唯一约束冲突按无操作成功处理
func (r *saveRepo) Create(ctx context.Context, clubID, userID string) error {
	save := &model.ClubSave{SaveID: uuid.New().String(), ClubID: clubID, UserID: userID}
	return wrapStoreErr(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(save).Error)
}

func (r *saveRepo) Delete(ctx context.Context, clubID, userID string) error {
	return wrapStoreErr(r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.ClubSave{}).Error)
}

func (r *saveRepo) ListUserSaved(ctx context.Context, userID string, clubIDs []string) ([]string, error) {
	if len(clubIDs) == 0 {
		return nil, nil
	}

	var saved []string
	err := r.db.WithContext(ctx).
		Model(&model.ClubSave{}).
		Select("club_id").
		Where("user_id = ?", userID).
		Where("club_id IN ?", clubIDs).
		Scan(&saved).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return saved, nil
}
