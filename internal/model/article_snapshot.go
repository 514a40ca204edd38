package model

import (
	"time"
)

// ArticleSnapshot 文章指标快照, 每次采集追加一行, 永不覆盖
type ArticleSnapshot struct {
	ID                 uint64    `gorm:"primaryKey"`
	ArticleID          uint64    `gorm:"not null;index:idx_article_collected,unique" json:"articleId"`
	CollectedAt        time.Time `gorm:"not null;index:idx_article_collected,unique;index:idx_collected_at" json:"collectedAt"`
	Title              string    `gorm:"type:varchar(500);not null" json:"title"`
	Slug               string    `gorm:"type:varchar(500)" json:"slug"`
	PublishedAt        time.Time `json:"publishedAt"`
	Views              int       `gorm:"not null;default:0" json:"views"`
	Reactions          int       `gorm:"not null;default:0" json:"reactions"` // 平台口径可能回落, 原样入库
	Comments           int       `gorm:"not null;default:0" json:"comments"`
	ReadingTimeMinutes int       `gorm:"not null;default:1" json:"readingTimeMinutes"`
	Tags               []string  `gorm:"type:json;serializer:json" json:"tags"`
	IsDeleted          bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
}

func (ArticleSnapshot) TableName() string {
	return "article_snapshots"
}
