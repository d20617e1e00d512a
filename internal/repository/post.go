// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"codenest/internal/cache"
	"codenest/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their files.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListLatest(ctx context.Context, limit int) ([]*models.Post, error)
	ListTrendCandidates(ctx context.Context, window int) ([]*models.Post, error)
	ListByFollowed(ctx context.Context, followerID uint, limit int) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	ListDraftsByUser(ctx context.Context, userID uint) ([]*models.Post, error)
	ListBookmarkedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	UpdateWithFiles(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post together with its files. GORM writes the
// association rows inside the same transaction as the post itself, so a
// failed file insert rolls the whole post back.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	if !post.IsDraft {
		cache.InvalidateFeeds(ctx)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostCounts(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListLatest(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published(ctx).
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListTrendCandidates returns the newest published posts as ranking input.
// Scoring happens in the feed package, not in SQL, so the window is ordered
// by recency only.
func (r *postRepository) ListTrendCandidates(ctx context.Context, window int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published(ctx).
		Order("posts.created_at DESC").
		Limit(window).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByFollowed(ctx context.Context, followerID uint, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published(ctx).
		Joins("JOIN follows ON follows.following_id = posts.user_id AND follows.follower_id = ?", followerID).
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published(ctx).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListDraftsByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostCounts(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("posts.user_id = ? AND posts.is_draft = ?", userID, true).
		Order("posts.updated_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListBookmarkedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published(ctx).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id AND bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// UpdateWithFiles rewrites the post's scalar columns and replaces its file
// set in a single transaction. Readers never observe a post with a partial
// file list.
func (r *postRepository) UpdateWithFiles(ctx context.Context, post *models.Post) error {
	files := post.Files
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":       post.Title,
			"description": post.Description,
			"language":    post.Language,
			"tags":        post.Tags,
			"is_draft":    post.IsDraft,
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.CodeFile{}).Error; err != nil {
			return err
		}
		for i := range files {
			files[i].ID = 0
			files[i].PostID = post.ID
			files[i].Position = i
		}
		return tx.Create(&files).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateFeeds(ctx)
	return nil
}

// Delete removes the post row; files, likes, bookmarks and comments go with
// it through the FK cascade rules.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeeds(ctx)
	return nil
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// published is the base query for feed-facing listings: drafts never leave
// the storage layer.
func (r *postRepository) published(ctx context.Context) *gorm.DB {
	return r.applyPostCounts(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("posts.is_draft = ?", false)
}

// applyPostCounts adds the aggregate columns in the same query via
// correlated subqueries instead of N+1 count round trips.
func (r *postRepository) applyPostCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count")
}
