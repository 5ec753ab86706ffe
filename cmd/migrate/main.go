package main

import (
	"log"

	"re-ad-be/internal/config"
	"re-ad-be/internal/model"
	"re-ad-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running AutoMigrate on %s...", cfg.Database.Driver)

	models := []interface{}{
		&model.Workspace{},
		&model.ReadRecord{},
		&model.Highlight{},
		&model.GraphNode{},
		&model.GraphEdge{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
