package model

import "time"

// 情绪标签取值
const (
	MoodPositive = "positive"
	MoodNegative = "negative"
	MoodNeutral  = "neutral"
	MoodSpam     = "spam"
)

// CommentInsight 评论情感分析结果, 每条评论只分析一次
type CommentInsight struct {
	CommentID      string    `gorm:"type:varchar(64);primaryKey" json:"commentId"`
	SentimentScore float64   `gorm:"not null;default:0" json:"sentimentScore"`
	Mood           string    `gorm:"type:varchar(16);not null" json:"mood"`
	IsSpam         bool      `gorm:"type:tinyint(1);not null;default:0" json:"isSpam"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
}

func (CommentInsight) TableName() string {
	return "comment_insights"
}
