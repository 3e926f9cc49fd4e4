package main

import (
	"log"

	api "section-notify-server/cmd/api"
	announcementdomain "section-notify-server/internal/announcement/domain"
	announcementRepo "section-notify-server/internal/announcement/repository"
	announcementUsecase "section-notify-server/internal/announcement/usecase"
	authUsecase "section-notify-server/internal/auth/usecase"
	orgdomain "section-notify-server/internal/org/domain"
	orgRepo "section-notify-server/internal/org/repository"
	orgUsecase "section-notify-server/internal/org/usecase"
	pushdomain "section-notify-server/internal/push/domain"
	pushRepo "section-notify-server/internal/push/repository"
	"section-notify-server/internal/push/scheduler"
	pushUsecase "section-notify-server/internal/push/usecase"
	taskdomain "section-notify-server/internal/task/domain"
	taskRepo "section-notify-server/internal/task/repository"
	taskUsecase "section-notify-server/internal/task/usecase"
	"section-notify-server/pkg/config"
	"section-notify-server/pkg/database"
	"section-notify-server/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&orgdomain.Department{},
		&orgdomain.Section{},
		&orgdomain.User{},
		&pushdomain.DeviceToken{},
		&pushdomain.NotificationPreference{},
		&pushdomain.NotificationHistory{},
		&taskdomain.Task{},
		&announcementdomain.Announcement{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	organizationRepo := orgRepo.NewOrgRepository(db)
	tokenRepository := pushRepo.NewTokenRepository(db)
	preferenceRepository := pushRepo.NewPreferenceRepository(db)
	historyRepository := pushRepo.NewHistoryRepository(db)
	taskRepository := taskRepo.NewTaskRepository(db)
	announcementRepository := announcementRepo.NewAnnouncementRepository(db)

	// Initialize FCM client. The server runs without it, dispatch calls
	// then fail with a gateway error instead of crashing on boot.
	var gateway pushUsecase.Gateway
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push delivery disabled): %v", err)
		} else {
			gateway = fcmClient
			log.Println("FCM client initialized")
		}
	} else {
		log.Println("[WARN] FIREBASE_CREDENTIALS not set, push delivery disabled")
	}

	// Initialize push pipeline
	resolver := pushUsecase.NewAudienceResolver(organizationRepo)
	dispatcher := pushUsecase.NewDispatcher(gateway, tokenRepository, preferenceRepository, historyRepository)
	publisher := pushUsecase.NewPublisher(resolver, organizationRepo, cfg.DispatchURL, cfg.ServiceKey, cfg.DispatchTimeout)

	// Initialize usecases
	authUc := authUsecase.NewAuthUsecase(cfg)
	orgUc := orgUsecase.NewOrgUsecase(organizationRepo, preferenceRepository)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository, organizationRepo, publisher)
	announcementUc := announcementUsecase.NewAnnouncementUsecase(announcementRepository, publisher)

	// Start the stale-token sweeper
	sweeper := scheduler.NewSweeper(tokenRepository, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Start the HTTP server
	handler := api.NewHandler(cfg, authUc, orgUc, taskUc, announcementUc, dispatcher, tokenRepository, preferenceRepository, historyRepository)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
