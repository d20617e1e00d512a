package service

import (
	"context"
	"strings"

	"codenest/internal/middleware"
	"codenest/internal/models"
	"codenest/internal/notifications"
	"codenest/internal/observability"
	"codenest/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	engRepo  repository.EngagementRepository
	notifier *notifications.Notifier
}

// FileInput is one code file in a create or update payload.
type FileInput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	Language    string
	Tags        []string
	IsDraft     bool
	Files       []FileInput
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Description string
	Language    string
	Tags        []string
	IsDraft     bool
	Files       []FileInput
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	engRepo repository.EngagementRepository,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		engRepo:  engRepo,
		notifier: notifier,
	}
}

const (
	maxTitleLen       = 300
	maxDescriptionLen = 10000
	maxFileCount      = 20
	maxFilenameLen    = 255
	maxFileContentLen = 200000
	maxTagCount       = 10
	maxTagLen         = 40
)

// validatePostInput enforces the whole post+files payload before anything is
// written, so a rejected request leaves no partial state behind.
func validatePostInput(title, language string, tags []string, files []FileInput) ([]models.CodeFile, error) {
	if strings.TrimSpace(title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("title too long (max 300 characters)")
	}
	if strings.TrimSpace(language) == "" {
		return nil, models.NewValidationError("language is required")
	}
	if len(tags) > maxTagCount {
		return nil, models.NewValidationError("too many tags (max 10)")
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return nil, models.NewValidationError("tags cannot be empty")
		}
		if len(tag) > maxTagLen {
			return nil, models.NewValidationError("tag too long (max 40 characters)")
		}
		if strings.Contains(tag, ",") {
			return nil, models.NewValidationError("tags cannot contain commas")
		}
	}
	if len(files) == 0 {
		return nil, models.NewValidationError("a post needs at least one file")
	}
	if len(files) > maxFileCount {
		return nil, models.NewValidationError("too many files (max 20)")
	}

	out := make([]models.CodeFile, len(files))
	for i, f := range files {
		if strings.TrimSpace(f.Filename) == "" {
			return nil, models.NewValidationError("every file needs a filename")
		}
		if len(f.Filename) > maxFilenameLen {
			return nil, models.NewValidationError("filename too long (max 255 characters)")
		}
		if f.Content == "" {
			return nil, models.NewValidationError("file content cannot be empty")
		}
		if len(f.Content) > maxFileContentLen {
			return nil, models.NewValidationError("file content too large")
		}
		out[i] = models.CodeFile{
			Filename: f.Filename,
			Content:  f.Content,
			Language: f.Language,
			Position: i,
		}
	}
	return out, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	files, err := validatePostInput(in.Title, in.Language, in.Tags, in.Files)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Language:    in.Language,
		Tags:        models.TagList(in.Tags),
		IsDraft:     in.IsDraft,
		UserID:      in.UserID,
		Files:       files,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostMutations.WithLabelValues("create").Inc()

	if !post.IsDraft {
		if err := s.notifier.PublishActivity(ctx, in.UserID, notifications.Event{
			Type:     notifications.EventPostPublished,
			ActorID:  in.UserID,
			TargetID: post.ID,
		}); err != nil {
			middleware.Logger.Warn("failed to publish post event", "post_id", post.ID, "error", err)
		}
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post with viewer decoration. Drafts resolve as not
// found for anyone but their author.
func (s *PostService) GetPost(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.IsDraft && post.UserID != viewerID {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err := decoratePosts(ctx, s.engRepo, viewerID, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	files, err := validatePostInput(in.Title, in.Language, in.Tags, in.Files)
	if err != nil {
		return nil, err
	}

	existing, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != in.UserID {
		return nil, models.NewForbiddenError("you can only update your own posts")
	}

	post := &models.Post{
		ID:          in.PostID,
		Title:       in.Title,
		Description: in.Description,
		Language:    in.Language,
		Tags:        models.TagList(in.Tags),
		IsDraft:     in.IsDraft,
		UserID:      in.UserID,
		Files:       files,
	}
	if err := s.postRepo.UpdateWithFiles(ctx, post); err != nil {
		return nil, err
	}
	observability.PostMutations.WithLabelValues("update").Inc()

	// publishing a draft counts as the post going live
	if existing.IsDraft && !in.IsDraft {
		if err := s.notifier.PublishActivity(ctx, in.UserID, notifications.Event{
			Type:     notifications.EventPostPublished,
			ActorID:  in.UserID,
			TargetID: in.PostID,
		}); err != nil {
			middleware.Logger.Warn("failed to publish post event", "post_id", in.PostID, "error", err)
		}
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	existing, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if existing.UserID != in.UserID {
		return models.NewForbiddenError("you can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}
	observability.PostMutations.WithLabelValues("delete").Inc()
	return nil
}

// RecordView bumps the post's view counter. Fire-and-forget semantics at the
// API layer, but the increment itself is atomic in SQL.
func (s *PostService) RecordView(ctx context.Context, postID uint) error {
	return s.postRepo.IncrementViewCount(ctx, postID)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := decoratePosts(ctx, s.engRepo, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) ListDrafts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListDraftsByUser(ctx, userID)
}

func (s *PostService) ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	posts, err := s.postRepo.ListBookmarkedByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := decoratePosts(ctx, s.engRepo, userID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}
