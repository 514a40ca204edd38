package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 窗口两端各备一张快照, 按查询时刻靠近哪端返回哪张
func closestStub(startViews, endViews map[uint64]int, eventTime time.Time, window time.Duration) func(uint64, time.Time, time.Duration) (*model.ArticleSnapshot, error) {
	windowStart := eventTime.Add(-window)
	return func(articleID uint64, target time.Time, _ time.Duration) (*model.ArticleSnapshot, error) {
		var views map[uint64]int
		if target.Sub(windowStart).Abs() < target.Sub(eventTime).Abs() {
			views = startViews
		} else {
			views = endViews
		}
		v, ok := views[articleID]
		if !ok {
			return nil, nil
		}
		return &model.ArticleSnapshot{ArticleID: articleID, Title: "article", Views: v, CollectedAt: target}, nil
	}
}

func TestAttributeEvent(t *testing.T) {
	cfg := config.AnalyticsConfig{AttributionWindowHours: 168, ProximityToleranceHours: 6}
	window := 168 * time.Hour
	eventTime := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	event := &model.FollowerEvent{CollectedAt: eventTime, Delta: 10}

	t.Run("按浏览增量份额拆分", func(t *testing.T) {
		snapRepo := &fakeSnapshotRepo{
			listArticleIDs: func() ([]uint64, error) { return []uint64{1, 2, 3}, nil },
			getClosest: closestStub(
				map[uint64]int{1: 100, 2: 50},        // 文章 3 在窗口起点没有快照
				map[uint64]int{1: 130, 2: 60, 3: 40}, // 文章 1 增 30, 文章 2 增 10
				eventTime, window,
			),
		}
		svc := NewAttributionService(snapRepo, &fakeFollowerRepo{}, cfg)

		out, err := svc.AttributeEvent(context.Background(), event)
		require.NoError(t, err)
		require.False(t, out.Unattributed)
		require.Len(t, out.Shares, 2)

		require.Equal(t, uint64(1), out.Shares[0].ArticleID)
		require.Equal(t, 30, out.Shares[0].ViewsGain)
		require.InDelta(t, 0.75, out.Shares[0].Share, 0.001)
		require.InDelta(t, 7.5, out.Shares[0].AttributedFollowers, 0.001)

		require.Equal(t, uint64(2), out.Shares[1].ArticleID)
		require.InDelta(t, 2.5, out.Shares[1].AttributedFollowers, 0.001)

		// 份额合计必须等于本次新增关注
		total := 0.0
		for _, s := range out.Shares {
			total += s.AttributedFollowers
		}
		require.InDelta(t, float64(event.Delta), total, 0.001)
	})

	t.Run("增量为零或为负的文章不参与", func(t *testing.T) {
		snapRepo := &fakeSnapshotRepo{
			listArticleIDs: func() ([]uint64, error) { return []uint64{1, 2}, nil },
			getClosest: closestStub(
				map[uint64]int{1: 100, 2: 50},
				map[uint64]int{1: 95, 2: 70}, // 文章 1 浏览回落
				eventTime, window,
			),
		}
		svc := NewAttributionService(snapRepo, &fakeFollowerRepo{}, cfg)

		out, err := svc.AttributeEvent(context.Background(), event)
		require.NoError(t, err)
		require.Len(t, out.Shares, 1)
		require.Equal(t, uint64(2), out.Shares[0].ArticleID)
		require.InDelta(t, 1.0, out.Shares[0].Share, 0.001)
	})

	t.Run("全局无增量判定为不可归因", func(t *testing.T) {
		snapRepo := &fakeSnapshotRepo{
			listArticleIDs: func() ([]uint64, error) { return []uint64{1}, nil },
			getClosest: closestStub(
				map[uint64]int{1: 100},
				map[uint64]int{1: 100},
				eventTime, window,
			),
		}
		svc := NewAttributionService(snapRepo, &fakeFollowerRepo{}, cfg)

		out, err := svc.AttributeEvent(context.Background(), event)
		require.NoError(t, err)
		require.True(t, out.Unattributed)
		require.Empty(t, out.Shares)
	})
}

func TestAttributionRollup(t *testing.T) {
	cfg := config.AnalyticsConfig{AttributionWindowHours: 168, ProximityToleranceHours: 6}
	t1 := time.Now().Add(-48 * time.Hour)
	t2 := time.Now().Add(-24 * time.Hour)

	snapCalls := map[uint64][2]int{
		1: {100, 140}, // 每个窗口都增 40
	}
	snapRepo := &fakeSnapshotRepo{
		listArticleIDs: func() ([]uint64, error) { return []uint64{1}, nil },
		getClosest: func(articleID uint64, target time.Time, _ time.Duration) (*model.ArticleSnapshot, error) {
			pair := snapCalls[articleID]
			// 靠近事件时刻的一端用增长后的值
			views := pair[0]
			if target.Sub(t1).Abs() < time.Hour || target.Sub(t2).Abs() < time.Hour {
				views = pair[1]
			}
			return &model.ArticleSnapshot{ArticleID: articleID, Title: "article", Views: views, CollectedAt: target}, nil
		},
	}
	followerRepo := &fakeFollowerRepo{
		listPositiveDeltas: func(since time.Time) ([]*model.FollowerEvent, error) {
			return []*model.FollowerEvent{
				{CollectedAt: t1, Delta: 4},
				{CollectedAt: t2, Delta: 6},
			}, nil
		},
	}
	svc := NewAttributionService(snapRepo, followerRepo, cfg)

	rollup, err := svc.Rollup(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 10, rollup.TotalNewFollowers)
	require.Equal(t, 0, rollup.UnattributedCount)
	require.Len(t, rollup.Articles, 1)
	// 两个事件的份额都落在唯一有增量的文章上
	require.InDelta(t, 10.0, rollup.Articles[0].AttributedFollowers, 0.001)

	_, err = svc.Rollup(context.Background(), 0)
	require.ErrorIs(t, err, ErrParamInvalid)
}
