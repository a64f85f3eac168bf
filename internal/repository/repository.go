package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/kittenluv1/clubhouse-sub000/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Club    ClubRepository
	Review  ReviewRepository
	Like    LikeRepository
	Save    SaveRepository
	Profile ProfileRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Club:    NewClubRepo(db),
		Review:  NewReviewRepo(db),
		Like:    NewLikeRepo(db),
		Save:    NewSaveRepo(db),
		Profile: NewProfileRepo(db),
	}
}

// wrapStoreErr 将非"记录不存在"类存储错误附加 ErrStorageUnavailable 哨兵
// "记录不存在"是业务语义（NotFound），原样透传给 Service 层翻译
func wrapStoreErr(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", pkgerrors.ErrStorageUnavailable, err)
}
