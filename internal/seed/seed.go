package seed

import (
	"fmt"
	"log"

	"codenest/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxDays     int
	ShouldClean bool
}

// Seed populates the database with test data: users, published posts
// and drafts, plus a mesh of follows, likes, bookmarks and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts.MaxDays)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ engagement mesh created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, bookmarks, follows, code_files, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some specific users for consistency if cleaning
	if count >= 2 {
		for _, name := range []string{"demo", "test"} {
			name := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
				u.Avatar = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name)
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[f.r.Intn(len(users))]

		// roughly one in eight posts stays a draft
		draft := f.r.Intn(8) == 0
		post, err := f.CreatePost(user, func(p *models.Post) {
			p.IsDraft = draft
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// createEngagement builds the social mesh. Likes are skewed toward a
// handful of posts so the trend tab has clear winners.
func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	published := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if !p.IsDraft {
			published = append(published, p)
		}
	}
	if len(published) == 0 || len(users) < 2 {
		return nil
	}

	// follow mesh: each user follows a few others
	for _, follower := range users {
		followCount := 1 + f.r.Intn(5)
		for j := 0; j < followCount; j++ {
			target := users[f.r.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			// duplicate edges hit the unique index; ignore them
			_ = f.CreateFollow(follower, target)
		}
	}

	for _, user := range users {
		likeCount := f.r.Intn(len(published)/2 + 1)
		for j := 0; j < likeCount; j++ {
			// squaring the draw skews likes toward early posts
			idx := f.r.Intn(len(published)) * f.r.Intn(len(published)) / len(published)
			_ = f.CreateLike(user, published[idx])
		}

		bookmarkCount := f.r.Intn(4)
		for j := 0; j < bookmarkCount; j++ {
			_ = f.CreateBookmark(user, published[f.r.Intn(len(published))])
		}

		commentCount := f.r.Intn(3)
		for j := 0; j < commentCount; j++ {
			if _, err := f.CreateComment(user, published[f.r.Intn(len(published))]); err != nil {
				return err
			}
		}
	}

	return nil
}
