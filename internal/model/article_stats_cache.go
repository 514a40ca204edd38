package model

import "time"

// ArticleStatsCache 派生指标缓存表, 全部字段可由快照和日报重算, 删表无损
type ArticleStatsCache struct {
	ArticleID             uint64    `gorm:"primaryKey" json:"articleId"`
	Title                 string    `gorm:"type:varchar(500)" json:"title"`
	Views                 int       `gorm:"not null;default:0" json:"views"`
	Reactions             int       `gorm:"not null;default:0" json:"reactions"`
	Comments              int       `gorm:"not null;default:0" json:"comments"`
	QualityScore          float64   `gorm:"not null;default:0" json:"qualityScore"`
	CompletionRate        float64   `gorm:"not null;default:0" json:"completionRate"`
	EngagementRate        float64   `gorm:"not null;default:0" json:"engagementRate"`
	AttributedFollowers7d float64   `gorm:"not null;default:0;column:attributed_followers_7d" json:"attributedFollowers7d"`
	RefreshedAt           time.Time `json:"refreshedAt"`
}

func (ArticleStatsCache) TableName() string {
	return "article_stats_cache"
}
