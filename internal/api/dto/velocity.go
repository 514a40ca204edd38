package dto

import "time"

// VelocityDTO 某一时刻附近的浏览增速
type VelocityDTO struct {
	ArticleID    uint64    `json:"article_id"`
	EventTime    time.Time `json:"event_time"`
	WindowHours  float64   `json:"window_hours"`
	ViewsPerHour float64   `json:"views_per_hour"`
}

// RestartDTO 长尾复苏判定结果
type RestartDTO struct {
	ArticleID     uint64  `json:"article_id"`
	Title         string  `json:"title"`
	BaselineViews int     `json:"baseline_views"`
	CurrentViews  int     `json:"current_views"`
	GrowthRatio   float64 `json:"growth_ratio"`
	Restarted     bool    `json:"restarted"`
}

// MilestoneDTO 里程碑事件
type MilestoneDTO struct {
	ArticleID      uint64    `json:"article_id"`
	EventType      string    `json:"event_type"`
	Description    string    `json:"description"`
	OccurredAt     time.Time `json:"occurred_at"`
	VelocityBefore float64   `json:"velocity_before"`
	VelocityAfter  float64   `json:"velocity_after"`
}

// MilestoneCreateDTO 手动标注里程碑的请求体
type MilestoneCreateDTO struct {
	EventType   string    `json:"event_type" binding:"required" validate:"oneof=views_milestone featured growth_restart"`
	Description string    `json:"description" validate:"max=500"`
	OccurredAt  time.Time `json:"occurred_at" binding:"required"`
}

// SyncResultDTO 手动触发同步的受理回执
type SyncResultDTO struct {
	Accepted bool   `json:"accepted"`
	TraceID  string `json:"trace_id"`
}
