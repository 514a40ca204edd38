package api

import "Pulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AnalyticsHandler   *handler.AnalyticsHandler
	AttributionHandler *handler.AttributionHandler
	ThemeHandler       *handler.ThemeHandler
	SentimentHandler   *handler.SentimentHandler
	SyncHandler        *handler.SyncHandler
}
