package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codenest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserProfile(t *testing.T) {
	s, app, db := setupTestServer(t)
	target, _ := createTestUser(t, s, db, "target")
	viewer, viewerAuth := createTestUser(t, s, db, "viewer")

	require.NoError(t, db.Create(&models.Follow{FollowerID: viewer.ID, FollowingID: target.ID}).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", target.ID), nil)
	req.Header.Set("Authorization", viewerAuth)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	decodeBody(t, resp, &profile)
	assert.Equal(t, "target", profile["username"])
	assert.EqualValues(t, 1, profile["followers_count"])
	assert.EqualValues(t, 0, profile["following_count"])
	assert.Equal(t, true, profile["is_following"])
	assert.NotContains(t, profile, "password")
}

func TestUpdateMyProfile(t *testing.T) {
	s, app, db := setupTestServer(t)
	user, auth := createTestUser(t, s, db, "renameme")

	req := postJSON(t, "/api/users/me", map[string]string{
		"username": "renamed",
		"bio":      "writes small tools",
	}, map[string]string{"Authorization": auth})
	req.Method = http.MethodPut

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "renamed", reloaded.Username)
	assert.Equal(t, "writes small tools", reloaded.Bio)

	t.Run("invalid username rejected", func(t *testing.T) {
		req := postJSON(t, "/api/users/me", map[string]string{
			"username": "-bad-",
		}, map[string]string{"Authorization": auth})
		req.Method = http.MethodPut
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
