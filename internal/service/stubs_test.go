package service

import (
	"context"

	"codenest/internal/models"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn               func(context.Context, *models.Post) error
	getByIDFn              func(context.Context, uint) (*models.Post, error)
	listLatestFn           func(context.Context, int) ([]*models.Post, error)
	listTrendCandidatesFn  func(context.Context, int) ([]*models.Post, error)
	listByFollowedFn       func(context.Context, uint, int) ([]*models.Post, error)
	listByUserFn           func(context.Context, uint, int, int) ([]*models.Post, error)
	listDraftsByUserFn     func(context.Context, uint) ([]*models.Post, error)
	listBookmarkedByUserFn func(context.Context, uint, int, int) ([]*models.Post, error)
	updateWithFilesFn      func(context.Context, *models.Post) error
	deleteFn               func(context.Context, uint) error
	incrementViewCountFn   func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListLatest(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.listLatestFn(ctx, limit)
}
func (s *postRepoStub) ListTrendCandidates(ctx context.Context, window int) ([]*models.Post, error) {
	return s.listTrendCandidatesFn(ctx, window)
}
func (s *postRepoStub) ListByFollowed(ctx context.Context, followerID uint, limit int) ([]*models.Post, error) {
	return s.listByFollowedFn(ctx, followerID, limit)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListDraftsByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listDraftsByUserFn(ctx, userID)
}
func (s *postRepoStub) ListBookmarkedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listBookmarkedByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) UpdateWithFiles(ctx context.Context, post *models.Post) error {
	return s.updateWithFilesFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:               func(context.Context, *models.Post) error { return nil },
		getByIDFn:              func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listLatestFn:           func(context.Context, int) ([]*models.Post, error) { return nil, nil },
		listTrendCandidatesFn:  func(context.Context, int) ([]*models.Post, error) { return nil, nil },
		listByFollowedFn:       func(context.Context, uint, int) ([]*models.Post, error) { return nil, nil },
		listByUserFn:           func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		listDraftsByUserFn:     func(context.Context, uint) ([]*models.Post, error) { return nil, nil },
		listBookmarkedByUserFn: func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		updateWithFilesFn:      func(context.Context, *models.Post) error { return nil },
		deleteFn:               func(context.Context, uint) error { return nil },
		incrementViewCountFn:   func(context.Context, uint) error { return nil },
	}
}

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	addFn            func(context.Context, models.EngagementKind, uint, uint) (bool, error)
	removeFn         func(context.Context, models.EngagementKind, uint, uint) (bool, error)
	existsFn         func(context.Context, models.EngagementKind, uint, uint) (bool, error)
	setsFn           func(context.Context, uint, []uint) (map[uint]bool, map[uint]bool, error)
	followerCountFn  func(context.Context, uint) (int64, error)
	followingCountFn func(context.Context, uint) (int64, error)
}

func (s *engagementRepoStub) Add(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error) {
	return s.addFn(ctx, kind, actorID, targetID)
}
func (s *engagementRepoStub) Remove(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error) {
	return s.removeFn(ctx, kind, actorID, targetID)
}
func (s *engagementRepoStub) Exists(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error) {
	return s.existsFn(ctx, kind, actorID, targetID)
}
func (s *engagementRepoStub) Sets(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, map[uint]bool, error) {
	return s.setsFn(ctx, userID, postIDs)
}
func (s *engagementRepoStub) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.followerCountFn(ctx, userID)
}
func (s *engagementRepoStub) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followingCountFn(ctx, userID)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		addFn:    func(context.Context, models.EngagementKind, uint, uint) (bool, error) { return true, nil },
		removeFn: func(context.Context, models.EngagementKind, uint, uint) (bool, error) { return true, nil },
		existsFn: func(context.Context, models.EngagementKind, uint, uint) (bool, error) { return false, nil },
		setsFn: func(context.Context, uint, []uint) (map[uint]bool, map[uint]bool, error) {
			return map[uint]bool{}, map[uint]bool{}, nil
		},
		followerCountFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		followingCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	existsFn     func(context.Context, uint) (bool, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		existsFn:     func(context.Context, uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByPostFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		listByPostFn:  func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		countByPostFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}
