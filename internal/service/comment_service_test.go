package service

import (
	"context"
	"strings"
	"testing"

	"codenest/internal/models"
	"codenest/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(commentRepo *commentRepoStub, postRepo *postRepoStub) *CommentService {
	return NewCommentService(commentRepo, postRepo, notifications.NewNotifier(nil))
}

func TestCommentService_CreateComment(t *testing.T) {
	var saved *models.Comment
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		saved = c
		return nil
	}
	svc := newCommentService(commentRepo, noopPostRepo())

	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  1,
		PostID:  2,
		Content: "  nice approach  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "nice approach", comment.Content, "content is trimmed")
	assert.Equal(t, saved, comment)
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	svc := newCommentService(noopCommentRepo(), noopPostRepo())

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "   "})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	_, err = svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 2, Content: strings.Repeat("a", 5001),
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestCommentService_DraftThreadsHidden(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return &models.Post{ID: 2, UserID: 9, IsDraft: true}, nil
	}
	svc := newCommentService(noopCommentRepo(), postRepo)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "hi"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	_, _, err = svc.ListComments(context.Background(), 2, 20, 0, 1)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentService_ListReturnsTotal(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.listByPostFn = func(context.Context, uint, int, int) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 1}, {ID: 2}}, nil
	}
	commentRepo.countByPostFn = func(context.Context, uint) (int64, error) { return 7, nil }
	svc := newCommentService(commentRepo, noopPostRepo())

	comments, total, err := svc.ListComments(context.Background(), 2, 2, 0, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.EqualValues(t, 7, total)
}
