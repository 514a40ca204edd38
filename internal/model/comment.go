package model

import (
	"time"
)

// Comment 读者评论原文, CommentID 为平台侧字符串主键
type Comment struct {
	ID             uint64    `gorm:"primaryKey"`
	CommentID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_comment_id" json:"commentId"`
	ArticleID      uint64    `gorm:"not null;index:idx_article_id" json:"articleId"`
	ArticleTitle   string    `gorm:"type:varchar(500)" json:"articleTitle"`
	AuthorUsername string    `gorm:"type:varchar(100);index:idx_author" json:"authorUsername"`
	AuthorName     string    `gorm:"type:varchar(200)" json:"authorName"`
	BodyHTML       string    `gorm:"type:text;column:body_html" json:"bodyHtml"`
	BodyLength     int       `gorm:"not null;default:0" json:"bodyLength"`
	CreatedAt      time.Time `json:"createdAt"`
	CollectedAt    time.Time `json:"collectedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
