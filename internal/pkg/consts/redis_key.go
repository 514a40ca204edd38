package consts

const (
	QualityRankKey    = "analytics:quality:rank:"
	ReferrerKey       = "analytics:referrers:"
	ThemeReportKey    = "theme:report"
	SentimentStatsKey = "sentiment:stats"
)

const (
	SyncPipelineLock = "lock:sync:pipeline"
	SentimentLock    = "lock:sentiment:batch"
)
