package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"time"
)

type AttributionService interface {
	// AttributeEvent 对单次关注增长事件做份额归因
	AttributeEvent(ctx context.Context, event *model.FollowerEvent) (*dto.AttributionEventDTO, error)
	// Rollup 时间窗内逐事件归因的累计结果
	Rollup(ctx context.Context, days int) (*dto.AttributionRollupDTO, error)
}

type attributionServiceImpl struct {
	snapshotRepo repository.SnapshotRepo
	followerRepo repository.FollowerRepo
	cfg          config.AnalyticsConfig
}

func NewAttributionService(
	snapshotRepo repository.SnapshotRepo,
	followerRepo repository.FollowerRepo,
	cfg config.AnalyticsConfig,
) AttributionService {
	return &attributionServiceImpl{
		snapshotRepo: snapshotRepo,
		followerRepo: followerRepo,
		cfg:          cfg,
	}
}

// AttributeEvent 话语权份额算法:
// 以事件时刻为窗口末端, 回看 AttributionWindowHours 小时,
// 每篇文章的浏览增量占全局增量的比例即为其分到的关注数份额。
// 快照不在容差内或增量为零的文章不参与; 全局增量为零时判定为无法归因。
func (s *attributionServiceImpl) AttributeEvent(ctx context.Context, event *model.FollowerEvent) (*dto.AttributionEventDTO, error) {
	window := time.Duration(s.cfg.AttributionWindowHours) * time.Hour
	tolerance := time.Duration(s.cfg.ProximityToleranceHours) * time.Hour

	end := event.CollectedAt
	start := end.Add(-window)

	out := &dto.AttributionEventDTO{
		OccurredAt:   event.CollectedAt,
		NewFollowers: event.Delta,
		Shares:       make([]*dto.AttributionShareDTO, 0),
	}

	articleIDs, err := s.snapshotRepo.ListArticleIDs(ctx)
	if err != nil {
		return nil, err
	}

	type gain struct {
		articleID uint64
		title     string
		views     int
	}
	gains := make([]gain, 0, len(articleIDs))
	totalGain := 0

	for _, articleID := range articleIDs {
		vStart, err := s.snapshotRepo.GetClosest(ctx, articleID, start, tolerance)
		if err != nil {
			return nil, err
		}
		vEnd, err := s.snapshotRepo.GetClosest(ctx, articleID, end, tolerance)
		if err != nil {
			return nil, err
		}
		// 窗口边界找不到快照的文章本次不参与归因
		if vStart == nil || vEnd == nil {
			continue
		}

		g := vEnd.Views - vStart.Views
		if g <= 0 {
			continue
		}
		gains = append(gains, gain{articleID: articleID, title: vEnd.Title, views: g})
		totalGain += g
	}

	if totalGain == 0 {
		out.Unattributed = true
		return out, nil
	}

	for _, g := range gains {
		share := float64(g.views) / float64(totalGain)
		out.Shares = append(out.Shares, &dto.AttributionShareDTO{
			ArticleID:           g.articleID,
			Title:               g.title,
			ViewsGain:           g.views,
			Share:               share,
			AttributedFollowers: share * float64(event.Delta),
		})
	}

	sort.Slice(out.Shares, func(i, j int) bool {
		if out.Shares[i].AttributedFollowers != out.Shares[j].AttributedFollowers {
			return out.Shares[i].AttributedFollowers > out.Shares[j].AttributedFollowers
		}
		return out.Shares[i].ArticleID < out.Shares[j].ArticleID
	})
	return out, nil
}

func (s *attributionServiceImpl) Rollup(ctx context.Context, days int) (*dto.AttributionRollupDTO, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}

	since := time.Now().AddDate(0, 0, -days)
	events, err := s.followerRepo.ListPositiveDeltas(ctx, since)
	if err != nil {
		return nil, err
	}

	rollup := &dto.AttributionRollupDTO{
		Days:     days,
		Articles: make([]*dto.AttributionShareDTO, 0),
	}

	merged := make(map[uint64]*dto.AttributionShareDTO)
	for _, event := range events {
		rollup.TotalNewFollowers += event.Delta

		result, err := s.AttributeEvent(ctx, event)
		if err != nil {
			log.WarnContext(ctx, "attribute follower event failed, skip", "collected_at", event.CollectedAt, "err", err)
			continue
		}
		if result.Unattributed {
			rollup.UnattributedCount++
			continue
		}
		for _, share := range result.Shares {
			agg, ok := merged[share.ArticleID]
			if !ok {
				agg = &dto.AttributionShareDTO{ArticleID: share.ArticleID, Title: share.Title}
				merged[share.ArticleID] = agg
			}
			agg.ViewsGain += share.ViewsGain
			agg.AttributedFollowers += share.AttributedFollowers
		}
	}

	for _, agg := range merged {
		agg.AttributedFollowers = util.Round2(agg.AttributedFollowers)
		rollup.Articles = append(rollup.Articles, agg)
	}
	sort.Slice(rollup.Articles, func(i, j int) bool {
		if rollup.Articles[i].AttributedFollowers != rollup.Articles[j].AttributedFollowers {
			return rollup.Articles[i].AttributedFollowers > rollup.Articles[j].AttributedFollowers
		}
		return rollup.Articles[i].ArticleID < rollup.Articles[j].ArticleID
	})

	return rollup, nil
}
