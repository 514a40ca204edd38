package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputeQuality(t *testing.T) {
	t.Run("真实数据标定", func(t *testing.T) {
		// 8 分钟文章, 90 天窗口 49544 秒 / 126 次浏览, 生涯 1472 浏览 88 赞 44 评论
		result, ok := computeQuality(qualityInput{
			TotalReadSeconds:   49544,
			TotalPageViews:     126,
			ReadingTimeMinutes: 8,
			Views:              1472,
			Reactions:          88,
			Comments:           44,
		})
		require.True(t, ok)
		require.InDelta(t, 393.21, result.AvgReadSeconds, 0.01)
		require.InDelta(t, 81.92, result.CompletionRate, 0.01)
		require.InDelta(t, 8.97, result.EngagementRate, 0.01)
		require.InDelta(t, 70.79, result.QualityScore, 0.01)
	})

	t.Run("无浏览数据不评分", func(t *testing.T) {
		_, ok := computeQuality(qualityInput{
			TotalReadSeconds:   100,
			TotalPageViews:     0,
			ReadingTimeMinutes: 3,
			Views:              50,
		})
		require.False(t, ok)

		_, ok = computeQuality(qualityInput{
			TotalReadSeconds:   100,
			TotalPageViews:     10,
			ReadingTimeMinutes: 3,
			Views:              0,
		})
		require.False(t, ok)
	})

	t.Run("阅读时长为零按一分钟算", func(t *testing.T) {
		result, ok := computeQuality(qualityInput{
			TotalReadSeconds:   30,
			TotalPageViews:     1,
			ReadingTimeMinutes: 0,
			Views:              100,
		})
		require.True(t, ok)
		require.InDelta(t, 50.0, result.CompletionRate, 0.01)
	})

	t.Run("完读率与总分封顶", func(t *testing.T) {
		result, ok := computeQuality(qualityInput{
			TotalReadSeconds:   1200,
			TotalPageViews:     2,
			ReadingTimeMinutes: 1,
			Views:              10,
			Reactions:          20,
			Comments:           20,
		})
		require.True(t, ok)
		require.InDelta(t, 100.0, result.CompletionRate, 0.01)
		// 互动率 400%, 计入分数时封顶 20 个点
		require.InDelta(t, 400.0, result.EngagementRate, 0.01)
		require.InDelta(t, 100.0, result.QualityScore, 0.01)
	})

	t.Run("加权平均而不是日均值再平均", func(t *testing.T) {
		// 日均值再平均会得到 (100 + 111.1)/2 ≈ 105.6, 正确值是 1100/10 = 110
		result, ok := computeQuality(qualityInput{
			TotalReadSeconds:   1100,
			TotalPageViews:     10,
			ReadingTimeMinutes: 3,
			Views:              100,
		})
		require.True(t, ok)
		require.InDelta(t, 110.0, result.AvgReadSeconds, 0.01)
	})
}

func TestScoreArticle(t *testing.T) {
	cfg := config.AnalyticsConfig{QualityWindowDays: 90, MinViews: 20}

	t.Run("无快照", func(t *testing.T) {
		svc := NewAnalyticsService(&fakeSnapshotRepo{}, &fakeDailyAnalyticRepo{}, nil, nil, nil, cfg)
		_, err := svc.ScoreArticle(context.Background(), 1)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("无浏览数据", func(t *testing.T) {
		snapRepo := &fakeSnapshotRepo{
			getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
				return &model.ArticleSnapshot{ArticleID: articleID, Views: 0}, nil
			},
		}
		svc := NewAnalyticsService(snapRepo, &fakeDailyAnalyticRepo{}, nil, nil, nil, cfg)
		_, err := svc.ScoreArticle(context.Background(), 1)
		require.ErrorIs(t, err, ErrNoViewData)
	})

	t.Run("正常评分", func(t *testing.T) {
		snapRepo := &fakeSnapshotRepo{
			getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
				return &model.ArticleSnapshot{
					ArticleID:          articleID,
					Title:              "Postgres CTE deep dive",
					Views:              1472,
					Reactions:          88,
					Comments:           44,
					ReadingTimeMinutes: 8,
				}, nil
			},
		}
		dailyRepo := &fakeDailyAnalyticRepo{
			getReadStats: func(articleID uint64, since time.Time) (*repository.ReadStats, error) {
				return &repository.ReadStats{TotalReadSeconds: 49544, TotalPageViews: 126}, nil
			},
		}
		svc := NewAnalyticsService(snapRepo, dailyRepo, nil, nil, nil, cfg)

		item, err := svc.ScoreArticle(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, uint64(7), item.ArticleID)
		require.InDelta(t, 393.21, item.AvgReadSeconds, 0.01)
		require.InDelta(t, 70.79, item.QualityScore, 0.01)
	})
}

func TestGetReadTimeWeightedAverage(t *testing.T) {
	snapRepo := &fakeSnapshotRepo{
		getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
			return &model.ArticleSnapshot{ArticleID: articleID, Title: "t", ReadingTimeMinutes: 2}, nil
		},
	}
	day1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	dailyRepo := &fakeDailyAnalyticRepo{
		listByArticle: func(articleID uint64, since time.Time) ([]*model.DailyAnalytic, error) {
			return []*model.DailyAnalytic{
				{ArticleID: articleID, Date: day1, PageViews: 1, TotalReadTimeSeconds: 100, AvgReadTimeSeconds: 100},
				{ArticleID: articleID, Date: day1.AddDate(0, 0, 1), PageViews: 9, TotalReadTimeSeconds: 1000, AvgReadTimeSeconds: 111.1},
			}, nil
		},
	}
	svc := NewAnalyticsService(snapRepo, dailyRepo, nil, nil, nil, config.AnalyticsConfig{QualityWindowDays: 90})

	out, err := svc.GetReadTime(context.Background(), 1, 90)
	require.NoError(t, err)
	require.Len(t, out.Points, 2)
	// 1100 秒 / 10 次浏览, 日均值再平均的 105.55 是错的
	require.InDelta(t, 110.0, out.WeightedAvgSeconds, 0.01)
	require.InDelta(t, 91.67, out.CompletionRate, 0.01)
}

func TestGetTopPerformers(t *testing.T) {
	cacheRepo := &fakeStatsCacheRepo{
		rows: []*model.ArticleStatsCache{
			{ArticleID: 2, Title: "b", Views: 500, QualityScore: 88.5, AttributedFollowers7d: 3.25},
			{ArticleID: 1, Title: "a", Views: 100, QualityScore: 60.0},
		},
	}
	svc := NewAnalyticsService(&fakeSnapshotRepo{}, &fakeDailyAnalyticRepo{}, cacheRepo, nil, nil, config.AnalyticsConfig{QualityWindowDays: 90})

	items, err := svc.GetTopPerformers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, uint64(2), items[0].ArticleID)
	require.InDelta(t, 88.5, items[0].QualityScore, 0.001)
	require.InDelta(t, 3.25, items[0].AttributedFollowers7d, 0.001)

	items, err = svc.GetTopPerformers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = svc.GetTopPerformers(context.Background(), 0)
	require.ErrorIs(t, err, ErrParamInvalid)
}

func TestMetricDelta(t *testing.T) {
	d := metricDelta(150, 100)
	require.InDelta(t, 50.0, d.Absolute, 0.001)
	require.InDelta(t, 50.0, d.Percent, 0.001)

	// 基数为零时环比按 0 给, 不产生 Inf
	d = metricDelta(10, 0)
	require.InDelta(t, 10.0, d.Absolute, 0.001)
	require.InDelta(t, 0.0, d.Percent, 0.001)
}

func TestGetLongTailChampions(t *testing.T) {
	cfg := config.AnalyticsConfig{LongTailMinAgeDays: 30, LongTailWindowDays: 30, LongTailMinViews: 20}
	now := time.Now()
	snapRepo := &fakeSnapshotRepo{
		listLatest: func() ([]*model.ArticleSnapshot, error) {
			return []*model.ArticleSnapshot{
				{ArticleID: 1, Title: "evergreen", PublishedAt: now.AddDate(0, 0, -100)},
				{ArticleID: 2, Title: "fresh hit", PublishedAt: now.AddDate(0, 0, -10)},
				{ArticleID: 3, Title: "fading", PublishedAt: now.AddDate(0, 0, -60)},
				{ArticleID: 4, Title: "gone", PublishedAt: now.AddDate(0, 0, -200), IsDeleted: true},
				{ArticleID: 5, Title: "steady", PublishedAt: now.AddDate(0, 0, -90)},
			}, nil
		},
	}
	dailyRepo := &fakeDailyAnalyticRepo{
		getReadStats: func(articleID uint64, since time.Time) (*repository.ReadStats, error) {
			views := map[uint64]int64{1: 120, 2: 500, 3: 15, 4: 999, 5: 80}
			return &repository.ReadStats{TotalPageViews: views[articleID]}, nil
		},
	}
	svc := NewAnalyticsService(snapRepo, dailyRepo, nil, nil, nil, cfg)

	items, err := svc.GetLongTailChampions(context.Background(), 10)
	require.NoError(t, err)
	// 太新的 2, 流量不足的 3, 已删除的 4 均不入选; 按窗口浏览量降序
	require.Len(t, items, 2)
	require.Equal(t, uint64(1), items[0].ArticleID)
	require.Equal(t, int64(120), items[0].ViewsWindow)
	require.Equal(t, 30, items[0].WindowDays)
	require.InDelta(t, 100, items[0].AgeDays, 1)
	require.Equal(t, uint64(5), items[1].ArticleID)

	items, err = svc.GetLongTailChampions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestGetReferrers(t *testing.T) {
	t.Run("无快照", func(t *testing.T) {
		svc := NewAnalyticsService(&fakeSnapshotRepo{}, &fakeDailyAnalyticRepo{}, nil, &fakeReferrerRepo{}, nil, config.AnalyticsConfig{})
		_, err := svc.GetReferrers(context.Background(), 1)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("返回最近一轮的来源分布", func(t *testing.T) {
		collectedAt := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
		referrerRepo := &fakeReferrerRepo{
			rows: []*model.ArticleReferrer{
				{ArticleID: 1, Domain: "google.com", Count: 320, CollectedAt: collectedAt},
				{ArticleID: 1, Domain: "dev.to", Count: 120, CollectedAt: collectedAt},
			},
		}
		snapRepo := &fakeSnapshotRepo{
			getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
				return &model.ArticleSnapshot{ArticleID: articleID, Title: "t"}, nil
			},
		}
		svc := NewAnalyticsService(snapRepo, &fakeDailyAnalyticRepo{}, nil, referrerRepo, nil, config.AnalyticsConfig{})

		report, err := svc.GetReferrers(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, uint64(1), report.ArticleID)
		require.Equal(t, collectedAt, report.CollectedAt)
		require.Len(t, report.Referrers, 2)
		require.Equal(t, "google.com", report.Referrers[0].Domain)
		require.Equal(t, 320, report.Referrers[0].Count)
	})
}
