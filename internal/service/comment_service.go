package service

import (
	"context"
	"strings"

	"codenest/internal/middleware"
	"codenest/internal/models"
	"codenest/internal/notifications"
	"codenest/internal/repository"
)

const maxCommentLen = 5000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notifier    *notifications.Notifier
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notifier *notifications.Notifier,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifier:    notifier,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("comment cannot be empty")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 5000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.IsDraft && post.UserID != in.UserID {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		if err := s.notifier.PublishActivity(ctx, post.UserID, notifications.Event{
			Type:     notifications.EventComment,
			ActorID:  in.UserID,
			TargetID: in.PostID,
		}); err != nil {
			middleware.Logger.Warn("failed to publish comment event", "post_id", in.PostID, "error", err)
		}
	}
	return comment, nil
}

// ListComments returns one page of a post's thread, oldest first, together
// with the thread's total size so clients can paginate.
func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int, viewerID uint) ([]*models.Comment, int64, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if post.IsDraft && post.UserID != viewerID {
		return nil, 0, models.NewNotFoundError("Post", postID)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
