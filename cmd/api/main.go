package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"reportdesk/internal/config"
	"reportdesk/internal/database"
	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
	"reportdesk/internal/middleware"
	"reportdesk/internal/modules/auth"
	"reportdesk/internal/modules/project"
	"reportdesk/internal/modules/report"
	"reportdesk/internal/modules/share"
	jwtsvc "reportdesk/internal/pkg/jwt"
	"reportdesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	reportRepo := repository.NewReportRepository(db)
	shareRepo := repository.NewShareLinkRepository(db)
	fileRepo := filestore.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	fileService, err := filestore.NewService(fileRepo, cfg.UploadDir, cfg.MaxFileSize)
	if err != nil {
		log.Fatal(err)
	}
	fileHandler := filestore.NewHandler(fileService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	projectService := project.NewService(projectRepo)
	projectHandler := project.NewHandler(projectService)

	reportService := report.NewService(reportRepo, fileRepo)
	reportHandler := report.NewHandler(reportService)

	shareService := share.NewService(shareRepo, reportService, cfg.ShareLinkTTL)
	shareHandler := share.NewHandler(shareService, fileService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		shareHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			projectHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			shareHandler.RegisterRoutes(protected)
			filestore.RegisterRoutes(protected, fileHandler, middleware.RequireRole(string(domain.RoleAdmin)))
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
