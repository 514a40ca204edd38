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

func TestVelocityFromRange(t *testing.T) {
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		snaps []*model.ArticleSnapshot
		hours float64
		want  float64
	}{
		{name: "无快照", snaps: nil, hours: 24, want: 0},
		{
			name:  "单快照不足以算增速",
			snaps: []*model.ArticleSnapshot{{Views: 100, CollectedAt: base}},
			hours: 24,
			want:  0,
		},
		{
			name: "首尾差除以时长",
			snaps: []*model.ArticleSnapshot{
				{Views: 100, CollectedAt: base},
				{Views: 160, CollectedAt: base.Add(12 * time.Hour)},
				{Views: 220, CollectedAt: base.Add(24 * time.Hour)},
			},
			hours: 24,
			want:  5,
		},
		{
			name: "负向窗口取绝对时长",
			snaps: []*model.ArticleSnapshot{
				{Views: 100, CollectedAt: base},
				{Views: 148, CollectedAt: base.Add(24 * time.Hour)},
			},
			hours: -24,
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, velocityFromRange(tt.snaps, tt.hours), 0.001)
		})
	}
}

func TestDetectRestart(t *testing.T) {
	tests := []struct {
		name          string
		baseline      int
		current       int
		wantRestarted bool
		wantRatio     float64
	}{
		{name: "显著回升", baseline: 40, current: 70, wantRestarted: true, wantRatio: 0.75},
		{name: "增幅不足", baseline: 60, current: 75, wantRestarted: false, wantRatio: 0.25},
		{name: "绝对量不足", baseline: 20, current: 35, wantRestarted: false, wantRatio: 0.75},
		{name: "基数为零不判定", baseline: 0, current: 100, wantRestarted: false, wantRatio: 0},
		{name: "浏览回落", baseline: 100, current: 60, wantRestarted: false, wantRatio: -0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restarted, ratio := detectRestart(tt.baseline, tt.current, 50, 0.5)
			require.Equal(t, tt.wantRestarted, restarted)
			require.InDelta(t, tt.wantRatio, ratio, 0.001)
		})
	}
}

func TestDetectRestarts(t *testing.T) {
	cfg := config.AnalyticsConfig{RestartMinViews: 50, RestartGrowthRatio: 0.5, RestartWindowDays: 30}

	snapRepo := &fakeSnapshotRepo{
		listLatest: func() ([]*model.ArticleSnapshot, error) {
			return []*model.ArticleSnapshot{
				{ArticleID: 1, Title: "revived"},
				{ArticleID: 2, Title: "flat"},
				{ArticleID: 3, Title: "gone", IsDeleted: true},
			}, nil
		},
	}
	// 近 30 天与再往前 30 天的浏览量: 文章 1 为 40 -> 70, 文章 2 为 60 -> 60
	windowViews := map[uint64][2]int64{
		1: {40, 70},
		2: {60, 60},
	}
	dailyRepo := &fakeDailyAnalyticRepo{
		getReadStats: func(articleID uint64, since time.Time) (*repository.ReadStats, error) {
			pair := windowViews[articleID]
			// 查询起点更早的是两个窗口的合计
			if time.Since(since) > 45*24*time.Hour {
				return &repository.ReadStats{TotalPageViews: pair[0] + pair[1]}, nil
			}
			return &repository.ReadStats{TotalPageViews: pair[1]}, nil
		},
	}
	svc := NewVelocityService(snapRepo, dailyRepo, &fakeMilestoneRepo{}, cfg)

	results, err := svc.DetectRestarts(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, uint64(1), results[0].ArticleID)
	require.Equal(t, 40, results[0].BaselineViews)
	require.Equal(t, 70, results[0].CurrentViews)
	require.InDelta(t, 0.75, results[0].GrowthRatio, 0.001)
	require.True(t, results[0].Restarted)
}

func TestRecordMilestone(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	snapRepo := &fakeSnapshotRepo{
		getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
			return &model.ArticleSnapshot{ArticleID: articleID, Title: "t"}, nil
		},
		listRange: func(articleID uint64, from, to time.Time) ([]*model.ArticleSnapshot, error) {
			// 事件前的窗口每小时 2 次, 事件后每小时 10 次
			if to.Before(base.Add(time.Minute)) {
				return []*model.ArticleSnapshot{
					{Views: 100, CollectedAt: from},
					{Views: 148, CollectedAt: to},
				}, nil
			}
			return []*model.ArticleSnapshot{
				{Views: 148, CollectedAt: from},
				{Views: 388, CollectedAt: to},
			}, nil
		},
	}
	milestoneRepo := &fakeMilestoneRepo{}
	svc := NewVelocityService(snapRepo, &fakeDailyAnalyticRepo{}, milestoneRepo, config.AnalyticsConfig{})

	out, err := svc.RecordMilestone(context.Background(), 1, model.MilestoneFeatured, "featured on homepage", base)
	require.NoError(t, err)
	require.InDelta(t, 2.0, out.VelocityBefore, 0.001)
	require.InDelta(t, 10.0, out.VelocityAfter, 0.001)
	require.Len(t, milestoneRepo.saved, 1)
	require.Equal(t, model.MilestoneFeatured, milestoneRepo.saved[0].EventType)
}

func TestListRecentMilestones(t *testing.T) {
	milestoneRepo := &fakeMilestoneRepo{
		events: []*model.MilestoneEvent{
			{ArticleID: 2, EventType: model.MilestoneFeatured, OccurredAt: time.Now().AddDate(0, 0, -2), VelocityAfter: 10},
			{ArticleID: 1, EventType: model.MilestoneViews, OccurredAt: time.Now().AddDate(0, 0, -9)},
		},
	}
	svc := NewVelocityService(&fakeSnapshotRepo{}, &fakeDailyAnalyticRepo{}, milestoneRepo, config.AnalyticsConfig{})

	out, err := svc.ListRecentMilestones(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, uint64(2), out[0].ArticleID)
	require.Equal(t, model.MilestoneFeatured, out[0].EventType)
	require.InDelta(t, 10.0, out[0].VelocityAfter, 0.001)

	_, err = svc.ListRecentMilestones(context.Background(), 0)
	require.ErrorIs(t, err, ErrParamInvalid)
}
