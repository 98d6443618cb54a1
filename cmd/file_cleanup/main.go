package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"reportdesk/internal/config"
	"reportdesk/internal/database"
	"reportdesk/internal/domain/filestore"
	"reportdesk/internal/repository"
)

// Removes stored files older than the retention window, except files
// belonging to completed projects, and purges expired share links.
// Intended to run from cron.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	service, err := filestore.NewService(filestore.NewRepository(db), cfg.UploadDir, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("filestore init failed: %v", err)
	}

	res, err := service.CleanupExpired(context.Background(), cfg.RetentionDays)
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}

	purged, err := repository.NewShareLinkRepository(db).DeleteExpired(context.Background(), time.Now())
	if err != nil {
		log.Fatalf("share link purge failed: %v", err)
	}

	log.Printf("file cleanup completed: cleaned=%d errors=%d retention_days=%d expired_links_purged=%d",
		res.Cleaned, res.Errors, cfg.RetentionDays, purged)
}
