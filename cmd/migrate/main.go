// Command migrate applies the registered schema to the configured database.
// Production deployments run this instead of relying on the server's
// startup AutoMigrate, which only fires outside production.
package main

import (
	"log"

	"codenest/internal/config"
	"codenest/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("schema applied")
}
