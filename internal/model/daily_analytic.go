package model

import (
	"time"
)

// DailyAnalytic 单篇文章单日的官方统计
// 增量字段(浏览/阅读时长)可跨天求和; Total 系字段是当日快照值, 只能取最新, 不能累加
type DailyAnalytic struct {
	ID                   uint64    `gorm:"primaryKey"`
	ArticleID            uint64    `gorm:"not null;index:idx_article_date,unique" json:"articleId"`
	Date                 time.Time `gorm:"type:date;not null;index:idx_article_date,unique;index:idx_date" json:"date"`
	PageViews            int       `gorm:"not null;default:0" json:"pageViews"`
	TotalReadTimeSeconds int       `gorm:"not null;default:0" json:"totalReadTimeSeconds"`
	AvgReadTimeSeconds   float64   `gorm:"not null;default:0" json:"avgReadTimeSeconds"`
	ReactionsTotal       int       `gorm:"not null;default:0" json:"reactionsTotal"`
	ReactionsLike        int       `gorm:"not null;default:0" json:"reactionsLike"`
	ReactionsReadinglist int       `gorm:"not null;default:0" json:"reactionsReadinglist"`
	ReactionsUnicorn     int       `gorm:"not null;default:0" json:"reactionsUnicorn"`
	CommentsTotal        int       `gorm:"not null;default:0" json:"commentsTotal"`
	FollowsTotal         int       `gorm:"not null;default:0" json:"followsTotal"`
	CollectedAt          time.Time `json:"collectedAt"`
}

func (DailyAnalytic) TableName() string {
	return "daily_analytics"
}
