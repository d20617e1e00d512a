package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"codenest/internal/config"
	"codenest/internal/database"
	"codenest/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a server backed by an in-memory sqlite database and
// no Redis, with routes mounted on a bare fiber app.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// sqlite needs the pragma for ON DELETE CASCADE to fire
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		Env:         "test",
		Port:        "8460",
		JWTSecret:   "test-secret-which-is-long-enough!!",
		FeedGravity: 1.8,
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// createTestUser inserts a user and returns it with a valid bearer token.
func createTestUser(t *testing.T, s *Server, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Create(user).Error)

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, "Bearer " + token
}

// createTestPost inserts a post with one file directly into the database.
func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string, draft bool) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    title,
		Language: "go",
		IsDraft:  draft,
		UserID:   userID,
		Files: []models.CodeFile{
			{Filename: "main.go", Content: "package main", Position: 0},
		},
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest), "body: %s", body)
}
