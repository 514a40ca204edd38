package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MoodCount 某种情绪标签的数量
type MoodCount struct {
	Mood  string
	Count int64
}

type InsightRepo interface {
	SaveInsight(ctx context.Context, insight *model.CommentInsight) error
	CountByMood(ctx context.Context) ([]*MoodCount, error)
	AvgSentiment(ctx context.Context) (float64, error)
	ListSpamComments(ctx context.Context, limit int) ([]*model.Comment, error)
	CountAnalyzed(ctx context.Context) (int64, error)
}

type insightRepoImpl struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepo {
	return &insightRepoImpl{db: db}
}

// SaveInsight 每条评论只分析一次, 已有结果不覆盖
func (r *insightRepoImpl) SaveInsight(ctx context.Context, insight *model.CommentInsight) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}},
		DoNothing: true,
	}).Create(insight).Error
}

// CountByMood 各情绪标签的评论数, 垃圾评论不计入
func (r *insightRepoImpl) CountByMood(ctx context.Context) ([]*MoodCount, error) {
	counts := make([]*MoodCount, 0)
	err := r.db.WithContext(ctx).
		Model(&model.CommentInsight{}).
		Select("mood, COUNT(*) AS count").
		Where("is_spam = ?", false).
		Group("mood").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// AvgSentiment 非垃圾评论的平均情感分
func (r *insightRepoImpl) AvgSentiment(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&model.CommentInsight{}).
		Select("COALESCE(AVG(sentiment_score), 0)").
		Where("is_spam = ?", false).
		Scan(&avg).Error
	return avg, err
}

// ListSpamComments 被判为垃圾的评论原文, 按分析时间倒序
func (r *insightRepoImpl) ListSpamComments(ctx context.Context, limit int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT c.* FROM comments c
			JOIN comment_insights ci ON ci.comment_id = c.comment_id
			WHERE ci.is_spam = 1
			ORDER BY ci.analyzed_at DESC
			LIMIT ?`, limit).
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *insightRepoImpl) CountAnalyzed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentInsight{}).Count(&count).Error
	return count, err
}
