package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path string, payload any, headers map[string]string) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestSignup(t *testing.T) {
	_, app, _ := setupTestServer(t)

	signup := func(username, email, password string) *http.Response {
		resp, err := app.Test(postJSON(t, "/api/auth/signup", map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}, nil))
		require.NoError(t, err)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		resp := signup("ada", "ada@example.com", "Str0ng!passw0rd")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Password string `json:"password"`
			} `json:"user"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "ada", body.User.Username)
		assert.Empty(t, body.User.Password, "password hash must not leak")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := signup("ada2", "ada@example.com", "Str0ng!passw0rd")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		resp := signup("ada", "other@example.com", "Str0ng!passw0rd")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		resp := signup("bob", "bob@example.com", "short")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		resp := signup("bob", "not-an-email", "Str0ng!passw0rd")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	s, app, db := setupTestServer(t)
	createTestUser(t, s, db, "ada")

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "ada@example.com",
			"password": "Str0ng!passw0rd",
		}, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)

		// token is accepted on a protected route
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+body.Token)
		meResp, err := app.Test(req)
		require.NoError(t, err)
		defer meResp.Body.Close()
		assert.Equal(t, http.StatusOK, meResp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "ada@example.com",
			"password": "Wrong!passw0rd1",
		}, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "Str0ng!passw0rd",
		}, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	_, app, _ := setupTestServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/posts"},
		{http.MethodPost, "/api/posts/1/like"},
		{http.MethodPost, "/api/posts/1/bookmark"},
		{http.MethodPost, "/api/users/2/follow"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users/me/drafts"},
		{http.MethodGet, "/api/users/me/bookmarks"},
		{http.MethodPut, "/api/users/me"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}
