package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo interface {
	SaveSnapshot(ctx context.Context, snap *model.ArticleSnapshot) error
	GetLatest(ctx context.Context, articleID uint64) (*model.ArticleSnapshot, error)
	ListLatest(ctx context.Context) ([]*model.ArticleSnapshot, error)
	GetClosest(ctx context.Context, articleID uint64, target time.Time, tolerance time.Duration) (*model.ArticleSnapshot, error)
	ListRange(ctx context.Context, articleID uint64, from, to time.Time) ([]*model.ArticleSnapshot, error)
	ListArticleIDs(ctx context.Context) ([]uint64, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

// SaveSnapshot 快照只追加不覆盖, 同一采集时刻重复写入直接忽略
func (r *snapshotRepoImpl) SaveSnapshot(ctx context.Context, snap *model.ArticleSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "collected_at"}},
		DoNothing: true,
	}).Create(snap).Error
}

// GetLatest 获取单篇文章的最新快照, 同一时刻取 id 最大的一条
func (r *snapshotRepoImpl) GetLatest(ctx context.Context, articleID uint64) (*model.ArticleSnapshot, error) {
	var snap model.ArticleSnapshot
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("collected_at DESC, id DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// ListLatest 获取每篇文章各自的最新快照
func (r *snapshotRepoImpl) ListLatest(ctx context.Context) ([]*model.ArticleSnapshot, error) {
	snaps := make([]*model.ArticleSnapshot, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT s.* FROM article_snapshots s
			JOIN (SELECT article_id, MAX(collected_at) AS max_collected FROM article_snapshots GROUP BY article_id) t
			ON s.article_id = t.article_id AND s.collected_at = t.max_collected
			ORDER BY s.article_id ASC`).
		Scan(&snaps).Error
	if err != nil {
		return nil, err
	}
	return LatestPerArticle(snaps), nil
}

// GetClosest 在 target±tolerance 内找时间上最接近的快照, 没有则返回 nil
func (r *snapshotRepoImpl) GetClosest(ctx context.Context, articleID uint64, target time.Time, tolerance time.Duration) (*model.ArticleSnapshot, error) {
	var snap model.ArticleSnapshot
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Where("collected_at BETWEEN ? AND ?", target.Add(-tolerance), target.Add(tolerance)).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "ABS(TIMESTAMPDIFF(SECOND, collected_at, ?)) ASC, id DESC", Vars: []interface{}{target}},
		}).
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// ListRange 获取时间区间内的快照, 按采集时间升序
func (r *snapshotRepoImpl) ListRange(ctx context.Context, articleID uint64, from, to time.Time) ([]*model.ArticleSnapshot, error) {
	snaps := make([]*model.ArticleSnapshot, 0)
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Where("collected_at BETWEEN ? AND ?", from, to).
		Order("collected_at ASC, id ASC").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListArticleIDs 获取出现过快照的全部文章 id
func (r *snapshotRepoImpl) ListArticleIDs(ctx context.Context) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.db.WithContext(ctx).
		Model(&model.ArticleSnapshot{}).
		Distinct("article_id").
		Order("article_id ASC").
		Pluck("article_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
