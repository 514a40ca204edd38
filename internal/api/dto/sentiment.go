package dto

import "time"

// SentimentBatchDTO 一轮增量分析的执行汇总
type SentimentBatchDTO struct {
	Processed int `json:"processed"`
	Spam      int `json:"spam"`
	Failed    int `json:"failed"`
}

// SentimentStatsDTO 整体情绪分布, 垃圾评论单列
type SentimentStatsDTO struct {
	TotalComments int64            `json:"total_comments"`
	Analyzed      int64            `json:"analyzed"`
	AvgScore      float64          `json:"avg_score"`
	MoodCount     map[string]int64 `json:"mood_count"`
}

// SpamCommentDTO 被拦下的垃圾评论
type SpamCommentDTO struct {
	CommentID string    `json:"comment_id"`
	ArticleID uint64    `json:"article_id"`
	Author    string    `json:"author"`
	Excerpt   string    `json:"excerpt"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionDTO 还没有回复的读者提问
type QuestionDTO struct {
	CommentID    string    `json:"comment_id"`
	ArticleID    uint64    `json:"article_id"`
	ArticleTitle string    `json:"article_title"`
	Author       string    `json:"author"`
	Excerpt      string    `json:"excerpt"`
	CreatedAt    time.Time `json:"created_at"`
}
