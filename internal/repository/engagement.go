// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"fmt"

	"codenest/internal/cache"
	"codenest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository persists the toggleable user relationships: likes and
// bookmarks on posts, follows between users. Row existence is the state, so
// every write is an insert or a delete and both report whether they changed
// anything.
type EngagementRepository interface {
	// Add inserts the edge. Returns false when the edge already existed,
	// including when a concurrent request inserted it first.
	Add(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error)
	// Remove deletes the edge. Returns false when there was nothing to delete.
	Remove(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error)
	Exists(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error)

	// Sets resolves, in two queries, which of the given posts the user has
	// liked and bookmarked.
	Sets(ctx context.Context, userID uint, postIDs []uint) (liked, bookmarked map[uint]bool, err error)

	FollowerCount(ctx context.Context, userID uint) (int64, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository returns a new EngagementRepository implementation.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Add(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error) {
	// ON CONFLICT DO NOTHING on the unique pair index: a concurrent duplicate
	// insert loses the race silently instead of surfacing a constraint error.
	row, err := rowFor(kind, actorID, targetID)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	r.invalidate(ctx, kind, targetID)
	return res.RowsAffected > 0, nil
}

func (r *engagementRepository) Remove(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error) {
	res := r.scope(ctx, kind, actorID, targetID)
	if res == nil {
		return false, fmt.Errorf("unknown engagement kind %q", kind)
	}
	res = res.Delete(modelFor(kind))
	if res.Error != nil {
		return false, res.Error
	}
	r.invalidate(ctx, kind, targetID)
	return res.RowsAffected > 0, nil
}

func (r *engagementRepository) Exists(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) (bool, error) {
	scope := r.scope(ctx, kind, actorID, targetID)
	if scope == nil {
		return false, fmt.Errorf("unknown engagement kind %q", kind)
	}
	var count int64
	if err := scope.Model(modelFor(kind)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *engagementRepository) Sets(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, map[uint]bool, error) {
	liked := map[uint]bool{}
	bookmarked := map[uint]bool{}
	if userID == 0 || len(postIDs) == 0 {
		return liked, bookmarked, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}

	ids = ids[:0]
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		bookmarked[id] = true
	}
	return liked, bookmarked, nil
}

func (r *engagementRepository) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// scope returns the query filtered to the single edge, or nil for an
// unknown kind.
func (r *engagementRepository) scope(ctx context.Context, kind models.EngagementKind, actorID, targetID uint) *gorm.DB {
	db := r.db.WithContext(ctx)
	switch kind {
	case models.EngagementLike, models.EngagementBookmark:
		return db.Where("user_id = ? AND post_id = ?", actorID, targetID)
	case models.EngagementFollow:
		return db.Where("follower_id = ? AND following_id = ?", actorID, targetID)
	default:
		return nil
	}
}

func rowFor(kind models.EngagementKind, actorID, targetID uint) (any, error) {
	switch kind {
	case models.EngagementLike:
		return &models.Like{UserID: actorID, PostID: targetID}, nil
	case models.EngagementBookmark:
		return &models.Bookmark{UserID: actorID, PostID: targetID}, nil
	case models.EngagementFollow:
		return &models.Follow{FollowerID: actorID, FollowingID: targetID}, nil
	default:
		return nil, fmt.Errorf("unknown engagement kind %q", kind)
	}
}

func modelFor(kind models.EngagementKind) any {
	switch kind {
	case models.EngagementLike:
		return &models.Like{}
	case models.EngagementBookmark:
		return &models.Bookmark{}
	case models.EngagementFollow:
		return &models.Follow{}
	default:
		return nil
	}
}

// invalidate drops cached views whose contents depend on the edge. Likes feed
// into trend scores, so the ranked feeds go stale along with the post itself.
func (r *engagementRepository) invalidate(ctx context.Context, kind models.EngagementKind, targetID uint) {
	switch kind {
	case models.EngagementLike:
		cache.InvalidatePost(ctx, targetID)
		cache.InvalidateFeeds(ctx)
	case models.EngagementBookmark:
		cache.InvalidatePost(ctx, targetID)
	case models.EngagementFollow:
		cache.InvalidateUser(ctx, targetID)
	}
}
