package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsCacheRepo interface {
	SaveOrUpdate(ctx context.Context, row *model.ArticleStatsCache) error
	ListByQuality(ctx context.Context, limit int) ([]*model.ArticleStatsCache, error)
}

type statsCacheRepoImpl struct {
	db *gorm.DB
}

func NewStatsCacheRepository(db *gorm.DB) StatsCacheRepo {
	return &statsCacheRepoImpl{db: db}
}

// SaveOrUpdate 派生指标整行覆盖
func (r *statsCacheRepoImpl) SaveOrUpdate(ctx context.Context, row *model.ArticleStatsCache) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"views",
			"reactions",
			"comments",
			"quality_score",
			"completion_rate",
			"engagement_rate",
			"attributed_followers_7d",
			"refreshed_at",
		}),
	}).Create(row).Error
}

// ListByQuality 按质量分倒序
func (r *statsCacheRepoImpl) ListByQuality(ctx context.Context, limit int) ([]*model.ArticleStatsCache, error) {
	rows := make([]*model.ArticleStatsCache, 0)
	err := r.db.WithContext(ctx).
		Order("quality_score DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
