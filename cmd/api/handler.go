package api

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	announcementDelivery "section-notify-server/internal/announcement/delivery"
	announcementUsecasePkg "section-notify-server/internal/announcement/usecase"
	authUsecase "section-notify-server/internal/auth/usecase"
	orgDelivery "section-notify-server/internal/org/delivery"
	orgUsecasePkg "section-notify-server/internal/org/usecase"
	pushDelivery "section-notify-server/internal/push/delivery"
	pushRepo "section-notify-server/internal/push/repository"
	pushUsecasePkg "section-notify-server/internal/push/usecase"
	taskDelivery "section-notify-server/internal/task/delivery"
	taskUsecasePkg "section-notify-server/internal/task/usecase"
	"section-notify-server/pkg/config"
)

type Handler struct {
	config              *config.Config
	authUsecase         authUsecase.AuthUsecase
	pushHandler         *pushDelivery.PushHandler
	taskHandler         *taskDelivery.TaskHandler
	announcementHandler *announcementDelivery.AnnouncementHandler
	orgHandler          *orgDelivery.OrgHandler
}

func NewHandler(
	cfg *config.Config,
	authUc authUsecase.AuthUsecase,
	orgUc orgUsecasePkg.OrgUsecase,
	taskUc *taskUsecasePkg.TaskUsecase,
	announcementUc *announcementUsecasePkg.AnnouncementUsecase,
	dispatcher *pushUsecasePkg.Dispatcher,
	tokenRepo pushRepo.TokenRepository,
	prefRepo pushRepo.PreferenceRepository,
	historyRepo pushRepo.HistoryRepository,
) *Handler {
	pushHandler := pushDelivery.NewPushHandler(dispatcher, tokenRepo, prefRepo, historyRepo)
	taskHandler := taskDelivery.NewTaskHandler(taskUc)
	announcementHandler := announcementDelivery.NewAnnouncementHandler(announcementUc)
	orgHandler := orgDelivery.NewOrgHandler(orgUc)
	log.Println("API handlers initialized")

	return &Handler{
		config:              cfg,
		authUsecase:         authUc,
		pushHandler:         pushHandler,
		taskHandler:         taskHandler,
		announcementHandler: announcementHandler,
		orgHandler:          orgHandler,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, h)

	log.Printf("Server starting on %s", addr)
	return r.Run(addr)
}
