package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReferrerRepo interface {
	SaveReferrer(ctx context.Context, row *model.ArticleReferrer) (bool, error)
	ListLatest(ctx context.Context, articleID uint64) ([]*model.ArticleReferrer, error)
}

type referrerRepoImpl struct {
	db *gorm.DB
}

func NewReferrerRepository(db *gorm.DB) ReferrerRepo {
	return &referrerRepoImpl{db: db}
}

// SaveReferrer 时序快照只追加不覆盖, 同一轮采集重复写入直接忽略
func (r *referrerRepoImpl) SaveReferrer(ctx context.Context, row *model.ArticleReferrer) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "domain"}, {Name: "collected_at"}},
		DoNothing: true,
	}).Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListLatest 最近一轮采集的来源分布, 按计数降序
func (r *referrerRepoImpl) ListLatest(ctx context.Context, articleID uint64) ([]*model.ArticleReferrer, error) {
	rows := make([]*model.ArticleReferrer, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT * FROM referrers
			WHERE article_id = ?
			AND collected_at = (SELECT MAX(collected_at) FROM referrers WHERE article_id = ?)
			ORDER BY count DESC, domain ASC`, articleID, articleID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
