package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TagList is an ordered list of free-text tags stored as a single
// comma-joined text column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "", nil
	}
	return strings.Join(t, ","), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported tag list source type %T", src)
	}
	if raw == "" {
		*t = nil
		return nil
	}
	*t = strings.Split(raw, ",")
	return nil
}

// Post represents a published code share: metadata plus one or more code files.
// A post is never persisted without at least one file.
type Post struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:300;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Language    string  `gorm:"size:40;not null;index" json:"language"`
	Tags        TagList `gorm:"type:text" json:"tags"`
	IsDraft     bool    `gorm:"not null;default:false;index" json:"is_draft"`
	ViewCount   uint    `gorm:"not null;default:0" json:"view_count"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	User        User    `gorm:"foreignKey:UserID" json:"user"`

	Files []CodeFile `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"files"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// IsLiked indicates whether the requesting viewer liked this post (computed)
	IsLiked bool `gorm:"-" json:"is_liked"`
	// IsBookmarked indicates whether the requesting viewer bookmarked this post (computed)
	IsBookmarked bool `gorm:"-" json:"is_bookmarked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// CodeFile is a named source file owned by exactly one post. Position
// preserves the order the files were submitted in.
type CodeFile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Language string `gorm:"size:40" json:"language"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

// TableName specifies the table name for GORM.
func (CodeFile) TableName() string {
	return "code_files"
}
