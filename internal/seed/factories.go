// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"codenest/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var languages = []string{
	"go", "python", "javascript", "typescript", "rust",
	"ruby", "java", "kotlin", "c", "cpp", "elixir", "zig",
}

var tagPool = []string{
	"algorithms", "cli", "webdev", "concurrency", "testing",
	"databases", "networking", "parsing", "performance", "tooling",
	"snippets", "beginners", "tips", "refactoring",
}

var fileStems = []string{
	"main", "server", "client", "parser", "utils", "cache",
	"worker", "config", "handler", "model",
}

var extByLanguage = map[string]string{
	"go": "go", "python": "py", "javascript": "js", "typescript": "ts",
	"rust": "rs", "ruby": "rb", "java": "java", "kotlin": "kt",
	"c": "c", "cpp": "cpp", "elixir": "ex", "zig": "zig",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seed runner and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
	// spread for generated created_at timestamps
	maxDays int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, maxDays int) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano())), maxDays: maxDays}
}

// backdate picks a timestamp spread over the configured window so that
// trend scores differ meaningfully between seeded posts.
func (f *Factory) backdate() time.Time {
	daysBack := f.r.Intn(f.maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post with one to three code files but does not
// persist it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	language := languages[f.r.Intn(len(languages))]

	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		Language:    language,
		Tags:        f.pickTags(),
		UserID:      user.ID,
		ViewCount:   uint(f.r.Intn(2000)),
	}
	post.CreatedAt = f.backdate()

	fileCount := 1 + f.r.Intn(3)
	ext := extByLanguage[language]
	for i := 0; i < fileCount; i++ {
		stem := fileStems[f.r.Intn(len(fileStems))]
		post.Files = append(post.Files, models.CodeFile{
			Filename: fmt.Sprintf("%s_%d.%s", stem, i, ext),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n"),
			Position: i,
		})
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (f *Factory) pickTags() models.TagList {
	count := 1 + f.r.Intn(4)
	tags := make(models.TagList, 0, count)
	seen := map[string]bool{}
	for len(tags) < count {
		tag := tagPool[f.r.Intn(len(tagPool))]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// CreateBookmark persists a bookmark from `user` on `post`.
func (f *Factory) CreateBookmark(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Bookmark{UserID: user.ID, PostID: post.ID}).Error
}

// CreateFollow persists a follow edge from `follower` to `following`.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	return f.db.Create(&models.Follow{FollowerID: follower.ID, FollowingID: following.ID}).Error
}
