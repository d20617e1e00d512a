package service

import (
	"context"
	"time"

	"codenest/internal/cache"
	"codenest/internal/featureflags"
	"codenest/internal/feed"
	"codenest/internal/models"
	"codenest/internal/observability"
	"codenest/internal/repository"
)

// Feed tabs.
const (
	TabTrend     = "trend"
	TabLatest    = "latest"
	TabFollowing = "following"
)

const (
	// FeedLimit is the page size every tab returns at most.
	FeedLimit = 50
	// TrendWindow is how many recent posts are considered for trend ranking.
	TrendWindow = 200
)

type FeedService struct {
	postRepo repository.PostRepository
	engRepo  repository.EngagementRepository
	flags    *featureflags.Manager
	gravity  float64
	now      func() time.Time
}

type ComposeFeedInput struct {
	Tab      string
	ViewerID uint
}

func NewFeedService(
	postRepo repository.PostRepository,
	engRepo repository.EngagementRepository,
	flags *featureflags.Manager,
	gravity float64,
) *FeedService {
	if gravity <= 0 {
		gravity = feed.DefaultGravity
	}
	return &FeedService{
		postRepo: postRepo,
		engRepo:  engRepo,
		flags:    flags,
		gravity:  gravity,
		now:      time.Now,
	}
}

// ComposeFeed builds one page of the requested tab. An unknown tab falls back
// to trend. The following tab is empty, not an error, for anonymous viewers.
func (s *FeedService) ComposeFeed(ctx context.Context, in ComposeFeedInput) ([]*models.Post, error) {
	tab := in.Tab
	switch tab {
	case TabLatest, TabFollowing:
	default:
		tab = TabTrend
	}
	observability.FeedRequests.WithLabelValues(tab).Inc()

	var (
		posts []*models.Post
		err   error
	)
	switch tab {
	case TabLatest:
		posts, err = s.cached(ctx, tab, in.ViewerID, func() ([]*models.Post, error) {
			return s.postRepo.ListLatest(ctx, FeedLimit)
		})
	case TabFollowing:
		if in.ViewerID == 0 {
			return []*models.Post{}, nil
		}
		posts, err = s.postRepo.ListByFollowed(ctx, in.ViewerID, FeedLimit)
	default:
		posts, err = s.cached(ctx, tab, in.ViewerID, func() ([]*models.Post, error) {
			candidates, ferr := s.postRepo.ListTrendCandidates(ctx, TrendWindow)
			if ferr != nil {
				return nil, ferr
			}
			return feed.RankByTrend(candidates, s.gravity, s.now(), FeedLimit), nil
		})
	}
	if err != nil {
		return nil, err
	}

	if err := decoratePosts(ctx, s.engRepo, in.ViewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// cached wraps a tab fetch in the shared feed cache. The cached page holds no
// viewer state; decoration runs after the page is loaded either way.
func (s *FeedService) cached(ctx context.Context, tab string, viewerID uint, fetch func() ([]*models.Post, error)) ([]*models.Post, error) {
	if !s.flags.Enabled(featureflags.FlagFeedCache, viewerID) {
		return fetch()
	}
	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedKey(tab), &posts, cache.FeedTTL, func() error {
		var ferr error
		posts, ferr = fetch()
		return ferr
	})
	return posts, err
}

// decoratePosts stamps is_liked / is_bookmarked onto each post for the viewer
// using one batched lookup per relation.
func decoratePosts(ctx context.Context, engRepo repository.EngagementRepository, viewerID uint, posts []*models.Post) error {
	if viewerID == 0 || len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	liked, bookmarked, err := engRepo.Sets(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.IsLiked = liked[p.ID]
		p.IsBookmarked = bookmarked[p.ID]
	}
	return nil
}
