package dto

import "time"

// QualityItemDTO 单篇文章的质量评估
type QualityItemDTO struct {
	ArticleID      uint64  `json:"article_id"`
	Title          string  `json:"title"`
	Views          int     `json:"views"`
	Reactions      int     `json:"reactions"`
	Comments       int     `json:"comments"`
	AvgReadSeconds float64 `json:"avg_read_seconds"`
	CompletionRate float64 `json:"completion_rate"`
	EngagementRate float64 `json:"engagement_rate"`
	QualityScore   float64 `json:"quality_score"`
}

// QualityRankDTO 质量榜返回包装
type QualityRankDTO struct {
	WindowDays int               `json:"window_days"`
	Items      []*QualityItemDTO `json:"items"`
}

// ReadTimePointDTO 单日阅读表现
type ReadTimePointDTO struct {
	Date           string  `json:"date"`
	PageViews      int     `json:"page_views"`
	AvgReadSeconds float64 `json:"avg_read_seconds"`
}

// ReadTimeDTO 单篇文章的阅读深度分析
type ReadTimeDTO struct {
	ArticleID          uint64              `json:"article_id"`
	Title              string              `json:"title"`
	ReadingTimeMinutes int                 `json:"reading_time_minutes"`
	WeightedAvgSeconds float64             `json:"weighted_avg_seconds"`
	CompletionRate     float64             `json:"completion_rate"`
	Points             []*ReadTimePointDTO `json:"points"`
}

// ReactionGapDTO 互动分类型统计与生涯总量的缺口
// 日报只覆盖被追踪的日期, 缺口本身就是信息
type ReactionGapDTO struct {
	ArticleID          uint64 `json:"article_id"`
	Title              string `json:"title"`
	LifetimeReactions  int    `json:"lifetime_reactions"`
	TrackedLike        int64  `json:"tracked_like"`
	TrackedReadinglist int64  `json:"tracked_readinglist"`
	TrackedUnicorn     int64  `json:"tracked_unicorn"`
	TrackedTotal       int64  `json:"tracked_total"`
	Gap                int64  `json:"gap"`
}

// ReferrerDTO 单个来源域名的生涯累计计数
type ReferrerDTO struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// ReferrerReportDTO 最近一轮采集的来源分布
type ReferrerReportDTO struct {
	ArticleID   uint64         `json:"article_id"`
	CollectedAt time.Time      `json:"collected_at"`
	Referrers   []*ReferrerDTO `json:"referrers"`
}

// LongTailItemDTO 发布已久但近窗口仍有稳定流量的文章
type LongTailItemDTO struct {
	ArticleID   uint64    `json:"article_id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	AgeDays     int       `json:"age_days"`
	ViewsWindow int64     `json:"views_window"`
	WindowDays  int       `json:"window_days"`
}

// TopPerformerDTO 缓存表里的综合表现条目
type TopPerformerDTO struct {
	ArticleID             uint64    `json:"article_id"`
	Title                 string    `json:"title"`
	Views                 int       `json:"views"`
	Reactions             int       `json:"reactions"`
	Comments              int       `json:"comments"`
	QualityScore          float64   `json:"quality_score"`
	CompletionRate        float64   `json:"completion_rate"`
	EngagementRate        float64   `json:"engagement_rate"`
	AttributedFollowers7d float64   `json:"attributed_followers_7d"`
	RefreshedAt           time.Time `json:"refreshed_at"`
}

// PeriodDTO 一段时间的全局汇总
type PeriodDTO struct {
	PageViews   int64 `json:"page_views"`
	ReadSeconds int64 `json:"read_seconds"`
	Reactions   int64 `json:"reactions"`
	Comments    int64 `json:"comments"`
}

// MetricDeltaDTO 环比变化
type MetricDeltaDTO struct {
	Absolute float64 `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// OverviewDTO 全局趋势: 当期与上一个等长周期的对比
type OverviewDTO struct {
	Days        int            `json:"days"`
	Current     PeriodDTO      `json:"current"`
	Previous    PeriodDTO      `json:"previous"`
	PageViews   MetricDeltaDTO `json:"page_views_delta"`
	ReadSeconds MetricDeltaDTO `json:"read_seconds_delta"`
	Reactions   MetricDeltaDTO `json:"reactions_delta"`
	Comments    MetricDeltaDTO `json:"comments_delta"`
}
