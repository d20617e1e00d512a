package database

import "codenest/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables are listed before their dependents so FK
// cascade constraints can be created on first migration.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.CodeFile{},
		&models.Like{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Comment{},
	}
}
