package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reportdesk/internal/database"
	"reportdesk/internal/domain"
)

// Seeds a local database with a demo agent and a couple of projects so the
// frontend has something to render without a production backend.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "reportdesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM share_links")
	db.Exec("DELETE FROM report_files")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM stored_files")
	db.Exec("DELETE FROM tasks")
	db.Exec("DELETE FROM projects")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@reportdesk.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin:", err)
	}

	agentHash, _ := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
	agent := domain.User{
		Email:        "demo@reportdesk.io",
		PasswordHash: string(agentHash),
		Role:         domain.RoleAgent,
		Name:         "Demo Agent",
	}
	if err := db.Create(&agent).Error; err != nil {
		log.Fatal("failed to create agent:", err)
	}

	log.Println("Creating projects...")
	projects := []domain.Project{
		{
			ID:      uuid.New().String(),
			Name:    "14 Maple Street Listing",
			Address: "14 Maple Street, Springfield",
			Status:  domain.ProjectActive,
			OwnerID: agent.ID,
		},
		{
			ID:      uuid.New().String(),
			Name:    "Riverside Condos Campaign",
			Address: "200 Riverside Drive, Springfield",
			Status:  domain.ProjectCompleted,
			OwnerID: agent.ID,
		},
	}
	for i := range projects {
		if err := db.Create(&projects[i]).Error; err != nil {
			log.Fatal("failed to create project:", err)
		}
	}

	log.Println("Creating tasks...")
	tasks := []domain.Task{
		{ID: uuid.New().String(), ProjectID: projects[0].ID, Title: "Collect listing photos", Status: domain.TaskOpen},
		{ID: uuid.New().String(), ProjectID: projects[0].ID, Title: "Draft market analysis", Status: domain.TaskOpen},
		{ID: uuid.New().String(), ProjectID: projects[1].ID, Title: "Final activity summary", Status: domain.TaskDone},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			log.Fatal("failed to create task:", err)
		}
	}

	log.Println("Creating reports...")
	reports := []domain.Report{
		{
			ID:        uuid.New().String(),
			ProjectID: projects[0].ID,
			Title:     "Listing Presentation — 14 Maple Street",
			Kind:      domain.ReportListingPresentation,
			CreatedBy: agent.ID,
		},
		{
			ID:        uuid.New().String(),
			ProjectID: projects[1].ID,
			Title:     "Riverside Condos Activity Summary",
			Kind:      domain.ReportActivitySummary,
			CreatedBy: agent.ID,
		},
	}
	for i := range reports {
		if err := db.Create(&reports[i]).Error; err != nil {
			log.Fatal("failed to create report:", err)
		}
	}

	log.Printf("Seed completed: users=2 projects=%d tasks=%d reports=%d", len(projects), len(tasks), len(reports))
	log.Println("Demo login: demo@reportdesk.io / agent123")
}
