//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=clubhouse password=clubhouse_password dbname=clubhouse_test sslmode=disable"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Club{},
		&model.PendingReview{},
		&model.PublishedReview{},
		&model.RejectedReview{},
		&model.ClubLike{},
		&model.ReviewLike{},
		&model.ClubSave{},
		&model.UserProfile{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestClub 创建测试社团并返回清理函数
func setupTestClub(t *testing.T) (*model.Club, func()) {
	t.Helper()
	ctx := context.Background()

	club := &model.Club{
		OrganizationID:   fmt.Sprintf("org-%d", time.Now().UnixNano()),
		OrganizationName: fmt.Sprintf("测试社团-%d", time.Now().UnixNano()),
		Category1Name:    "Dance Company",
	}
	if err := testDB.WithContext(ctx).Create(club).Error; err != nil {
		t.Fatalf("创建社团失败: %v", err)
	}

	cleanup := func() {
		testDB.Where("club_id = ?", club.OrganizationID).Delete(&model.PendingReview{})
		testDB.Where("club_id = ?", club.OrganizationID).Delete(&model.PublishedReview{})
		testDB.Where("club_id = ?", club.OrganizationID).Delete(&model.RejectedReview{})
		testDB.Where("organization_id = ?", club.OrganizationID).Delete(&model.Club{})
	}
	return club, cleanup
}

func newPendingReview(clubID string, satisfaction int, timeCommitment *int) *model.PendingReview {
	userID := uuid.New().String()
	return &model.PendingReview{ReviewRecord: model.ReviewRecord{
		ReviewID:             uuid.New().String(),
		ClubID:               clubID,
		UserID:               &userID,
		SatisfactionRating:   satisfaction,
		TimeCommitmentRating: timeCommitment,
		ReviewText:           "集成测试评价",
		CreatedAt:            time.Now(),
	}}
}

func intPtr(n int) *int { return &n }

// ═══════════════════════════════════════════════════════════
// Test: 分区搬移
// ═══════════════════════════════════════════════════════════

func TestApprove_MovesBetweenPartitions(t *testing.T) {
	club, cleanup := setupTestClub(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	pending := newPendingReview(club.OrganizationID, 4, intPtr(3))
	if err := repo.Review.CreatePending(ctx, pending); err != nil {
		t.Fatalf("CreatePending 失败: %v", err)
	}

	clubID, err := repo.Review.Approve(ctx, pending.ReviewID)
	if err != nil {
		t.Fatalf("Approve 失败: %v", err)
	}
	if clubID != club.OrganizationID {
		t.Errorf("期望 clubID=%s，实际=%s", club.OrganizationID, clubID)
	}

	// pending 分区不再有该行
	if _, err := repo.Review.GetPending(ctx, pending.ReviewID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 pending 行已删除，实际: %v", err)
	}

	// published 分区恰好一行，review_id 保持不变
	published, err := repo.Review.ListPublishedByClub(ctx, club.OrganizationID)
	if err != nil {
		t.Fatalf("ListPublishedByClub 失败: %v", err)
	}
	if len(published) != 1 || published[0].ReviewID != pending.ReviewID {
		t.Errorf("期望恰好一条已发布行且主键不变，实际=%+v", published)
	}

	// 聚合已在同一事务内重算
	got, err := repo.Club.GetByID(ctx, club.OrganizationID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.TotalNumReviews != 1 {
		t.Errorf("期望 total_num_reviews=1，实际=%d", got.TotalNumReviews)
	}
	if got.AverageSatisfaction == nil || *got.AverageSatisfaction != 4.0 {
		t.Errorf("期望 average_satisfaction=4.0，实际=%v", got.AverageSatisfaction)
	}
}

func TestApprove_ConcurrentSingleWinner(t *testing.T) {
	club, cleanup := setupTestClub(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	pending := newPendingReview(club.OrganizationID, 5, nil)
	if err := repo.Review.CreatePending(ctx, pending); err != nil {
		t.Fatalf("CreatePending 失败: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.Review.Approve(ctx, pending.ReviewID)
		}(i)
	}
	wg.Wait()

	successes, notFounds := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, gorm.ErrRecordNotFound):
			notFounds++
		default:
			t.Fatalf("意外错误: %v", err)
		}
	}
	if successes != 1 || notFounds != 1 {
		t.Errorf("期望恰好一个成功一个 NotFound，实际 success=%d notFound=%d", successes, notFounds)
	}

	// published 分区恰好一行
	published, err := repo.Review.ListPublishedByClub(ctx, club.OrganizationID)
	if err != nil {
		t.Fatalf("ListPublishedByClub 失败: %v", err)
	}
	if len(published) != 1 {
		t.Errorf("期望恰好一条已发布行，实际=%d", len(published))
	}
}

func TestRecomputeAggregates_IgnoresNullDimensions(t *testing.T) {
	club, cleanup := setupTestClub(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// time_commitment = [2, 4, null]
	for _, tc := range []*int{intPtr(2), intPtr(4), nil} {
		pending := newPendingReview(club.OrganizationID, 3, tc)
		if err := repo.Review.CreatePending(ctx, pending); err != nil {
			t.Fatalf("CreatePending 失败: %v", err)
		}
		if _, err := repo.Review.Approve(ctx, pending.ReviewID); err != nil {
			t.Fatalf("Approve 失败: %v", err)
		}
	}

	got, err := repo.Club.GetByID(ctx, club.OrganizationID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.TotalNumReviews != 3 {
		t.Errorf("期望 total_num_reviews=3，实际=%d", got.TotalNumReviews)
	}
	if got.AverageTimeCommitment == nil || *got.AverageTimeCommitment != 3.0 {
		t.Errorf("期望 average_time_commitment=3.0（忽略 NULL），实际=%v", got.AverageTimeCommitment)
	}
	// diversity 全为 NULL → 平均值保持 NULL 而非 0
	if got.AverageDiversity != nil {
		t.Errorf("期望 average_diversity=NULL，实际=%v", *got.AverageDiversity)
	}
}

func TestResubmit_PreservesReviewID(t *testing.T) {
	club, cleanup := setupTestClub(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	pending := newPendingReview(club.OrganizationID, 2, nil)
	if err := repo.Review.CreatePending(ctx, pending); err != nil {
		t.Fatalf("CreatePending 失败: %v", err)
	}
	if err := repo.Review.Reject(ctx, pending.ReviewID); err != nil {
		t.Fatalf("Reject 失败: %v", err)
	}

	revised := newPendingReview(club.OrganizationID, 4, nil)
	revised.ReviewID = pending.ReviewID
	revised.UserID = pending.UserID
	if err := repo.Review.Resubmit(ctx, revised); err != nil {
		t.Fatalf("Resubmit 失败: %v", err)
	}

	// rejected 分区已空，pending 分区持有同一主键
	if _, err := repo.Review.GetRejected(ctx, pending.ReviewID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 rejected 行已删除，实际: %v", err)
	}
	back, err := repo.Review.GetPending(ctx, pending.ReviewID)
	if err != nil {
		t.Fatalf("GetPending 失败: %v", err)
	}
	if back.SatisfactionRating != 4 {
		t.Errorf("期望修订后的满意度=4，实际=%d", back.SatisfactionRating)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 点赞幂等
// ═══════════════════════════════════════════════════════════

func TestLikeCreate_DuplicateIsNoop(t *testing.T) {
	club, cleanup := setupTestClub(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	userID := uuid.New().String()
	defer testDB.Where("club_id = ?", club.OrganizationID).Delete(&model.ClubLike{})

	for i := 0; i < 3; i++ {
		if err := repo.Like.Create(ctx, model.SubjectClub, club.OrganizationID, userID); err != nil {
			t.Fatalf("第 %d 次 Create 失败: %v", i+1, err)
		}
	}

	count, err := repo.Like.CountBySubject(ctx, model.SubjectClub, club.OrganizationID)
	if err != nil {
		t.Fatalf("CountBySubject 失败: %v", err)
	}
	if count != 1 {
		t.Errorf("重复点赞应只保留一行，实际=%d", count)
	}
}
