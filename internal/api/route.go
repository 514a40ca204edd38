package api

import (
	"Pulse/internal/api/middleware"
	"Pulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/quality", group.AnalyticsHandler.GetQualityRank)
			analyticsGroup.GET("/top", group.AnalyticsHandler.GetTopPerformers)
			analyticsGroup.GET("/read-time/:article_id", group.AnalyticsHandler.GetReadTime)
			analyticsGroup.GET("/reactions", group.AnalyticsHandler.GetReactionGaps)
			analyticsGroup.GET("/overview", group.AnalyticsHandler.GetOverview)
			analyticsGroup.GET("/restarts", group.AnalyticsHandler.GetRestarts)
			analyticsGroup.GET("/long-tail", group.AnalyticsHandler.GetLongTailChampions)
			analyticsGroup.GET("/referrers/:article_id", group.AnalyticsHandler.GetReferrers)
			analyticsGroup.GET("/milestones", group.AnalyticsHandler.ListRecentMilestones)
			analyticsGroup.GET("/milestones/:article_id", group.AnalyticsHandler.ListMilestones)
			analyticsGroup.POST("/milestones/:article_id", group.AnalyticsHandler.RecordMilestone)
		}

		apiGroup.GET("/attribution", group.AttributionHandler.GetRollup)

		themeGroup := apiGroup.Group("/themes")
		{
			themeGroup.GET("/report", group.ThemeHandler.GetReport)
			themeGroup.GET("/similar/:article_id", group.ThemeHandler.FindSimilar)
			themeGroup.POST("/classify/:article_id", group.ThemeHandler.ClassifyArticle)
			themeGroup.POST("/classify", group.ThemeHandler.ClassifyAll)
		}

		sentimentGroup := apiGroup.Group("/sentiment")
		{
			sentimentGroup.GET("/stats", group.SentimentHandler.GetStats)
			sentimentGroup.GET("/spam", group.SentimentHandler.ListSpam)
			sentimentGroup.GET("/questions", group.SentimentHandler.ListQuestions)
		}

		apiGroup.POST("/sync", group.SyncHandler.TriggerSync)
	}

	return r
}
