package model

import "time"

// 里程碑事件类型
const (
	MilestoneViews    = "views_milestone"
	MilestoneFeatured = "featured"
	MilestoneRestart  = "growth_restart"
)

// MilestoneEvent 文章生命周期里程碑, 记录事件前后的浏览增速
type MilestoneEvent struct {
	ID             uint64    `gorm:"primaryKey"`
	ArticleID      uint64    `gorm:"not null;index:idx_article_id" json:"articleId"`
	EventType      string    `gorm:"type:varchar(32);not null" json:"eventType"`
	Description    string    `gorm:"type:varchar(500)" json:"description"`
	OccurredAt     time.Time `gorm:"not null;index:idx_occurred_at" json:"occurredAt"`
	VelocityBefore float64   `gorm:"not null;default:0" json:"velocityBefore"` // 浏览/小时
	VelocityAfter  float64   `gorm:"not null;default:0" json:"velocityAfter"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (MilestoneEvent) TableName() string {
	return "milestone_events"
}
