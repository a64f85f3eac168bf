package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kittenluv1/clubhouse-sub000/internal/model"
	"github.com/kittenluv1/clubhouse-sub000/internal/repository"
)

// ── Mock ClubRepository ──

type mockClubRepo struct {
	clubs     map[string]*model.Club
	searchErr error
}

func newMockClubRepo() *mockClubRepo {
	return &mockClubRepo{clubs: make(map[string]*model.Club)}
}

func (m *mockClubRepo) Search(_ context.Context, q repository.ClubQuery) ([]model.Club, int64, error) {
	if m.searchErr != nil {
		return nil, 0, m.searchErr
	}

	var matched []model.Club
	for _, c := range m.clubs {
		if q.NameTerm != "" && !strings.Contains(strings.ToLower(c.OrganizationName), strings.ToLower(q.NameTerm)) {
			continue
		}
		if len(q.Categories) > 0 && !matchAnyCategory(c, q.Categories) {
			continue
		}
		matched = append(matched, *c)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch q.Sort {
		case repository.SortByReviews:
			if a.TotalNumReviews != b.TotalNumReviews {
				return a.TotalNumReviews > b.TotalNumReviews
			}
		case repository.SortByName:
			return a.OrganizationName < b.OrganizationName
		default:
			av, bv := a.AverageSatisfaction, b.AverageSatisfaction
			if av != nil && bv == nil {
				return true
			}
			if av == nil && bv != nil {
				return false
			}
			if av != nil && bv != nil && *av != *bv {
				return *av > *bv
			}
		}
		if a.OrganizationName != b.OrganizationName {
			return a.OrganizationName < b.OrganizationName
		}
		return a.OrganizationID < b.OrganizationID
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func matchAnyCategory(c *model.Club, categories []string) bool {
	for _, cat := range categories {
		lower := strings.ToLower(cat)
		if strings.Contains(strings.ToLower(c.Category1Name), lower) ||
			strings.Contains(strings.ToLower(c.Category2Name), lower) {
			return true
		}
	}
	return false
}

func (m *mockClubRepo) GetByID(_ context.Context, organizationID string) (*model.Club, error) {
	if c, ok := m.clubs[organizationID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClubRepo) GetByName(_ context.Context, organizationName string) (*model.Club, error) {
	for _, c := range m.clubs {
		if c.OrganizationName == organizationName {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClubRepo) ListByIDs(_ context.Context, organizationIDs []string) ([]model.Club, error) {
	var result []model.Club
	for _, id := range organizationIDs {
		if c, ok := m.clubs[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClubRepo) Upsert(_ context.Context, clubs []model.Club) error {
	for i := range clubs {
		c := clubs[i]
		if existing, ok := m.clubs[c.OrganizationID]; ok {
			c.AverageSatisfaction = existing.AverageSatisfaction
			c.TotalNumReviews = existing.TotalNumReviews
		}
		m.clubs[c.OrganizationID] = &c
	}
	return nil
}

func (m *mockClubRepo) ListCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, c := range m.clubs {
		if c.Category1Name != "" {
			seen[c.Category1Name] = true
		}
		if c.Category2Name != "" {
			seen[c.Category2Name] = true
		}
	}
	var result []string
	for cat := range seen {
		result = append(result, cat)
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockClubRepo) RecomputeAggregates(_ context.Context, clubID string) error {
	return nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	pending   map[string]*model.PendingReview
	published map[string]*model.PublishedReview
	rejected  map[string]*model.RejectedReview
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		pending:   make(map[string]*model.PendingReview),
		published: make(map[string]*model.PublishedReview),
		rejected:  make(map[string]*model.RejectedReview),
	}
}

func (m *mockReviewRepo) CreatePending(_ context.Context, review *model.PendingReview) error {
	m.pending[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) GetPending(_ context.Context, reviewID string) (*model.PendingReview, error) {
	if r, ok := m.pending[reviewID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) ListPending(_ context.Context, newestFirst bool) ([]model.PendingReview, error) {
	var result []model.PendingReview
	for _, r := range m.pending {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockReviewRepo) Approve(_ context.Context, reviewID string) (string, error) {
	r, ok := m.pending[reviewID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	delete(m.pending, reviewID)
	m.published[reviewID] = &model.PublishedReview{ReviewRecord: r.ReviewRecord}
	return r.ClubID, nil
}

func (m *mockReviewRepo) Reject(_ context.Context, reviewID string) error {
	r, ok := m.pending[reviewID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.pending, reviewID)
	m.rejected[reviewID] = &model.RejectedReview{ReviewRecord: r.ReviewRecord}
	return nil
}

func (m *mockReviewRepo) GetRejected(_ context.Context, reviewID string) (*model.RejectedReview, error) {
	if r, ok := m.rejected[reviewID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) ListRejectedByUser(_ context.Context, userID string) ([]model.RejectedReview, error) {
	var result []model.RejectedReview
	for _, r := range m.rejected {
		if r.UserID != nil && *r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockReviewRepo) CountRejectedAfter(_ context.Context, userID string, after *time.Time) (int64, error) {
	var count int64
	for _, r := range m.rejected {
		if r.UserID == nil || *r.UserID != userID {
			continue
		}
		if after != nil && !r.CreatedAt.After(*after) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockReviewRepo) Resubmit(_ context.Context, review *model.PendingReview) error {
	if _, ok := m.rejected[review.ReviewID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rejected, review.ReviewID)
	m.pending[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) DeleteRejected(_ context.Context, reviewID string) error {
	if _, ok := m.rejected[reviewID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rejected, reviewID)
	return nil
}

func (m *mockReviewRepo) ListPublishedByClub(_ context.Context, clubID string) ([]model.PublishedReview, error) {
	var result []model.PublishedReview
	for _, r := range m.published {
		if r.ClubID == clubID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock LikeRepository ──

type likeKey struct {
	kind      model.SubjectKind
	subjectID string
	userID    string
}

type mockLikeRepo struct {
	likes     map[likeKey]bool
	countsErr error
	likedErr  error
}

func newMockLikeRepo() *mockLikeRepo {
	return &mockLikeRepo{likes: make(map[likeKey]bool)}
}

func (m *mockLikeRepo) CountBySubjects(_ context.Context, kind model.SubjectKind, subjectIDs []string) (map[string]int64, error) {
	if m.countsErr != nil {
		return nil, m.countsErr
	}
	counts := make(map[string]int64)
	for k := range m.likes {
		if k.kind != kind {
			continue
		}
		for _, id := range subjectIDs {
			if k.subjectID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (m *mockLikeRepo) ListUserLiked(_ context.Context, kind model.SubjectKind, userID string, subjectIDs []string) ([]string, error) {
	if m.likedErr != nil {
		return nil, m.likedErr
	}
	var result []string
	for _, id := range subjectIDs {
		if m.likes[likeKey{kind: kind, subjectID: id, userID: userID}] {
			result = append(result, id)
		}
	}
	return result, nil
}

func (m *mockLikeRepo) Exists(_ context.Context, kind model.SubjectKind, subjectID, userID string) (bool, error) {
	return m.likes[likeKey{kind: kind, subjectID: subjectID, userID: userID}], nil
}

func (m *mockLikeRepo) Create(_ context.Context, kind model.SubjectKind, subjectID, userID string) error {
	m.likes[likeKey{kind: kind, subjectID: subjectID, userID: userID}] = true
	return nil
}

func (m *mockLikeRepo) Delete(_ context.Context, kind model.SubjectKind, subjectID, userID string) error {
	delete(m.likes, likeKey{kind: kind, subjectID: subjectID, userID: userID})
	return nil
}

func (m *mockLikeRepo) CountBySubject(_ context.Context, kind model.SubjectKind, subjectID string) (int64, error) {
	if m.countsErr != nil {
		return 0, m.countsErr
	}
	var count int64
	for k := range m.likes {
		if k.kind == kind && k.subjectID == subjectID {
			count++
		}
	}
	return count, nil
}

// ── Mock SaveRepository ──

type saveKey struct {
	clubID string
	userID string
}

type mockSaveRepo struct {
	saves    map[saveKey]bool
	savedErr error
}

func newMockSaveRepo() *mockSaveRepo {
	return &mockSaveRepo{saves: make(map[saveKey]bool)}
}

func (m *mockSaveRepo) Exists(_ context.Context, clubID, userID string) (bool, error) {
	return m.saves[saveKey{clubID: clubID, userID: userID}], nil
}

func (m *mockSaveRepo) Create(_ context.Context, clubID, userID string) error {
	m.saves[saveKey{clubID: clubID, userID: userID}] = true
	return nil
}

func (m *mockSaveRepo) Delete(_ context.Context, clubID, userID string) error {
	delete(m.saves, saveKey{clubID: clubID, userID: userID})
	return nil
}

func (m *mockSaveRepo) ListUserSaved(_ context.Context, userID string, clubIDs []string) ([]string, error) {
	if m.savedErr != nil {
		return nil, m.savedErr
	}
	var result []string
	for _, id := range clubIDs {
		if m.saves[saveKey{clubID: id, userID: userID}] {
			result = append(result, id)
		}
	}
	return result, nil
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.UserProfile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.UserProfile)}
}

func (m *mockProfileRepo) Get(_ context.Context, userID string) (*model.UserProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) ListByIDs(_ context.Context, userIDs []string) ([]model.UserProfile, error) {
	var result []model.UserProfile
	for _, id := range userIDs {
		if p, ok := m.profiles[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProfileRepo) UpsertAlias(_ context.Context, userID, displayAlias string) error {
	if p, ok := m.profiles[userID]; ok {
		p.DisplayAlias = displayAlias
		return nil
	}
	m.profiles[userID] = &model.UserProfile{UserID: userID, DisplayAlias: displayAlias}
	return nil
}

func (m *mockProfileRepo) SetLastViewedRejectedAt(_ context.Context, userID string, viewedAt time.Time) error {
	if p, ok := m.profiles[userID]; ok {
		p.LastViewedRejectedAt = &viewedAt
		return nil
	}
	m.profiles[userID] = &model.UserProfile{UserID: userID, LastViewedRejectedAt: &viewedAt}
	return nil
}

// ── 测试装配辅助 ──

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

type mockRepos struct {
	club    *mockClubRepo
	review  *mockReviewRepo
	like    *mockLikeRepo
	save    *mockSaveRepo
	profile *mockProfileRepo
	repo    *repository.Repository
}

func newMockRepos() *mockRepos {
	club := newMockClubRepo()
	review := newMockReviewRepo()
	like := newMockLikeRepo()
	save := newMockSaveRepo()
	profile := newMockProfileRepo()
	return &mockRepos{
		club:    club,
		review:  review,
		like:    like,
		save:    save,
		profile: profile,
		repo: &repository.Repository{
			Club:    club,
			Review:  review,
			Like:    like,
			Save:    save,
			Profile: profile,
		},
	}
}
