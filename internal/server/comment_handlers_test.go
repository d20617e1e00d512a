package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codenest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	s, app, db := setupTestServer(t)
	author, _ := createTestUser(t, s, db, "author")
	commenter, auth := createTestUser(t, s, db, "commenter")
	createTestPost(t, db, author.ID, "discussed", false)

	resp, err := app.Test(postJSON(t, "/api/posts/1/comments", map[string]string{
		"content": "  great snippet  ",
	}, map[string]string{"Authorization": auth}))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comment models.Comment
	decodeBody(t, resp, &comment)
	assert.Equal(t, "great snippet", comment.Content)
	assert.Equal(t, commenter.ID, comment.UserID)

	// listing is public, oldest-first, and carries the thread total
	list, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/1/comments", nil))
	require.NoError(t, err)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)

	var page struct {
		Comments []models.Comment `json:"comments"`
		Total    int64            `json:"total"`
	}
	decodeBody(t, list, &page)
	require.Len(t, page.Comments, 1)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "great snippet", page.Comments[0].Content)
	assert.Equal(t, "commenter", page.Comments[0].User.Username)
}

func TestCreateComment_Validation(t *testing.T) {
	s, app, db := setupTestServer(t)
	author, _ := createTestUser(t, s, db, "author")
	_, auth := createTestUser(t, s, db, "commenter")
	createTestPost(t, db, author.ID, "discussed", false)

	cases := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t "},
		{"too long", strings.Repeat("x", 5001)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(postJSON(t, "/api/posts/1/comments", map[string]string{
				"content": tc.content,
			}, map[string]string{"Authorization": auth}))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateComment_DraftIsHidden(t *testing.T) {
	s, app, db := setupTestServer(t)
	author, _ := createTestUser(t, s, db, "author")
	_, auth := createTestUser(t, s, db, "commenter")
	createTestPost(t, db, author.ID, "draft", true)

	resp, err := app.Test(postJSON(t, "/api/posts/1/comments", map[string]string{
		"content": "sneaky",
	}, map[string]string{"Authorization": auth}))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// listing the draft's comments is equally hidden
	list, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/1/comments", nil))
	require.NoError(t, err)
	list.Body.Close()
	assert.Equal(t, http.StatusNotFound, list.StatusCode)
}
