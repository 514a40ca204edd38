package wire

import (
	"Pulse/internal/api"
	"Pulse/internal/api/config"
	"Pulse/internal/api/handler"
	"Pulse/internal/job"
	"Pulse/internal/pkg/cron"
	"Pulse/internal/pkg/devto"
	"Pulse/internal/pkg/sentiment"
	"Pulse/internal/repository"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronManager *cron.Manager
	SyncJob     *job.SyncPipelineJob
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	snapshotRepo := repository.NewSnapshotRepository(db)
	dailyRepo := repository.NewDailyAnalyticRepository(db)
	followerRepo := repository.NewFollowerRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	insightRepo := repository.NewInsightRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	statsCacheRepo := repository.NewStatsCacheRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	referrerRepo := repository.NewReferrerRepository(db)

	devtoClient := devto.NewClient(cfg.Devto)
	scorer, err := sentiment.NewLLMScorer(cfg.LLM)
	if err != nil {
		return nil, err
	}

	attributionSvc := service.NewAttributionService(snapshotRepo, followerRepo, cfg.Analytics)
	analyticsSvc := service.NewAnalyticsService(snapshotRepo, dailyRepo, statsCacheRepo, referrerRepo, attributionSvc, cfg.Analytics)
	velocitySvc := service.NewVelocityService(snapshotRepo, dailyRepo, milestoneRepo, cfg.Analytics)
	themeSvc := service.NewThemeService(themeRepo, snapshotRepo)
	sentimentSvc := service.NewSentimentService(commentRepo, insightRepo, scorer, cfg.Devto.Username, cfg.Analytics)
	devtoSvc := service.NewDevtoService(devtoClient, snapshotRepo, followerRepo, commentRepo, dailyRepo, referrerRepo, cfg.Devto)

	syncJob := job.NewSyncPipelineJob(devtoSvc, themeSvc, sentimentSvc, analyticsSvc, velocitySvc)
	sentimentJob := job.NewSentimentJob(sentimentSvc, cfg.Analytics)

	handlers := &api.HandlersGroup{
		AnalyticsHandler:   handler.NewAnalyticsHandler(analyticsSvc, velocitySvc),
		AttributionHandler: handler.NewAttributionHandler(attributionSvc),
		ThemeHandler:       handler.NewThemeHandler(themeSvc),
		SentimentHandler:   handler.NewSentimentHandler(sentimentSvc),
		SyncHandler:        handler.NewSyncHandler(syncJob),
	}

	router := api.SetupRouter(handlers)
	cronMgr := cron.NewCronManager(syncJob, sentimentJob)

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronManager: cronMgr,
		SyncJob:     syncJob,
	}, nil
}
