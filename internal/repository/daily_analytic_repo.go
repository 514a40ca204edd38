package repository

import (
	"Pulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReadStats 某篇文章在时间窗内的阅读汇总
type ReadStats struct {
	TotalReadSeconds int64
	TotalPageViews   int64
}

// PeriodTotals 一段时间的全局汇总, 浏览与阅读时长为增量求和,
// 互动数取每篇文章截止期末的最新值再求和
type PeriodTotals struct {
	PageViews   int64
	ReadSeconds int64
	Reactions   int64
	Comments    int64
}

type DailyAnalyticRepo interface {
	SaveOrUpdateDaily(ctx context.Context, row *model.DailyAnalytic) error
	GetReadStats(ctx context.Context, articleID uint64, since time.Time) (*ReadStats, error)
	ListByArticle(ctx context.Context, articleID uint64, since time.Time) ([]*model.DailyAnalytic, error)
	SumReactionBreakdown(ctx context.Context, articleID uint64) (like, readinglist, unicorn int64, err error)
	GetPeriodTotals(ctx context.Context, from, to time.Time) (*PeriodTotals, error)
}

type dailyAnalyticRepoImpl struct {
	db *gorm.DB
}

func NewDailyAnalyticRepository(db *gorm.DB) DailyAnalyticRepo {
	return &dailyAnalyticRepoImpl{db: db}
}

// SaveOrUpdateDaily 按 article_id + date 幂等写入, 已存在则用最新值覆盖
func (r *dailyAnalyticRepoImpl) SaveOrUpdateDaily(ctx context.Context, row *model.DailyAnalytic) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"page_views",
			"total_read_time_seconds",
			"avg_read_time_seconds",
			"reactions_total",
			"reactions_like",
			"reactions_readinglist",
			"reactions_unicorn",
			"comments_total",
			"follows_total",
			"collected_at",
		}),
	}).Create(row).Error
}

// GetReadStats 时间窗内阅读秒数与浏览量的总和, 供加权平均使用
func (r *dailyAnalyticRepoImpl) GetReadStats(ctx context.Context, articleID uint64, since time.Time) (*ReadStats, error) {
	var stats ReadStats
	err := r.db.WithContext(ctx).
		Model(&model.DailyAnalytic{}).
		Select("COALESCE(SUM(total_read_time_seconds), 0) AS total_read_seconds, COALESCE(SUM(page_views), 0) AS total_page_views").
		Where("article_id = ? AND date >= ?", articleID, since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListByArticle 按日升序返回某篇文章的日报
func (r *dailyAnalyticRepoImpl) ListByArticle(ctx context.Context, articleID uint64, since time.Time) ([]*model.DailyAnalytic, error) {
	rows := make([]*model.DailyAnalytic, 0)
	err := r.db.WithContext(ctx).
		Where("article_id = ? AND date >= ?", articleID, since).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumReactionBreakdown 分类型互动的日增量总和
// 与快照里的生涯总量天然对不齐, 差值就是日报覆盖不到的部分
func (r *dailyAnalyticRepoImpl) SumReactionBreakdown(ctx context.Context, articleID uint64) (int64, int64, int64, error) {
	var row struct {
		LikeSum        int64
		ReadinglistSum int64
		UnicornSum     int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.DailyAnalytic{}).
		Select("COALESCE(SUM(reactions_like), 0) AS like_sum, COALESCE(SUM(reactions_readinglist), 0) AS readinglist_sum, COALESCE(SUM(reactions_unicorn), 0) AS unicorn_sum").
		Where("article_id = ?", articleID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.LikeSum, row.ReadinglistSum, row.UnicornSum, nil
}

// GetPeriodTotals 期间全局汇总
// 浏览/阅读时长跨天可加; 互动数是当日快照值, 取期末每篇文章的最新一行再求和
func (r *dailyAnalyticRepoImpl) GetPeriodTotals(ctx context.Context, from, to time.Time) (*PeriodTotals, error) {
	var totals PeriodTotals

	err := r.db.WithContext(ctx).
		Model(&model.DailyAnalytic{}).
		Select("COALESCE(SUM(page_views), 0) AS page_views, COALESCE(SUM(total_read_time_seconds), 0) AS read_seconds").
		Where("date >= ? AND date < ?", from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(d.reactions_total), 0) AS reactions, COALESCE(SUM(d.comments_total), 0) AS comments
			FROM daily_analytics d
			JOIN (SELECT article_id, MAX(date) AS max_date FROM daily_analytics WHERE date < ? GROUP BY article_id) t
			ON d.article_id = t.article_id AND d.date = t.max_date`, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return &totals, nil
}
