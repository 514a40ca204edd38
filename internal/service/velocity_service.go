package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"math"
	"sort"
	"time"

	"github.com/jinzhu/copier"
)

type VelocityService interface {
	// Velocity 事件时刻前后 hoursOffset 小时内的浏览增速(次/小时)
	Velocity(ctx context.Context, articleID uint64, eventTime time.Time, hoursOffset float64) (*dto.VelocityDTO, error)
	// RecordMilestone 落一条里程碑事件, 附带事件前后增速
	RecordMilestone(ctx context.Context, articleID uint64, eventType, description string, occurredAt time.Time) (*dto.MilestoneDTO, error)
	// DetectRestarts 长尾复苏: 近窗口浏览较前一窗口显著回升的文章
	DetectRestarts(ctx context.Context) ([]*dto.RestartDTO, error)
	// ListMilestones 查询某篇文章的里程碑记录
	ListMilestones(ctx context.Context, articleID uint64) ([]*dto.MilestoneDTO, error)
	// ListRecentMilestones 近 days 天全部文章的里程碑, 时间倒序
	ListRecentMilestones(ctx context.Context, days int) ([]*dto.MilestoneDTO, error)
}

type velocityServiceImpl struct {
	snapshotRepo  repository.SnapshotRepo
	dailyRepo     repository.DailyAnalyticRepo
	milestoneRepo repository.MilestoneRepo
	cfg           config.AnalyticsConfig
}

func NewVelocityService(
	snapshotRepo repository.SnapshotRepo,
	dailyRepo repository.DailyAnalyticRepo,
	milestoneRepo repository.MilestoneRepo,
	cfg config.AnalyticsConfig,
) VelocityService {
	return &velocityServiceImpl{
		snapshotRepo:  snapshotRepo,
		dailyRepo:     dailyRepo,
		milestoneRepo: milestoneRepo,
		cfg:           cfg,
	}
}

// velocityFromRange 窗口首尾快照的浏览差除以时长
// 不足两个快照时增速按 0 处理
func velocityFromRange(snaps []*model.ArticleSnapshot, hours float64) float64 {
	if len(snaps) < 2 || hours == 0 {
		return 0
	}
	first := snaps[0]
	last := snaps[len(snaps)-1]
	return float64(last.Views-first.Views) / math.Abs(hours)
}

func (s *velocityServiceImpl) Velocity(ctx context.Context, articleID uint64, eventTime time.Time, hoursOffset float64) (*dto.VelocityDTO, error) {
	if hoursOffset == 0 {
		return nil, ErrParamInvalid
	}

	from, to := eventTime, eventTime.Add(time.Duration(hoursOffset*float64(time.Hour)))
	if hoursOffset < 0 {
		from, to = to, from
	}

	snaps, err := s.snapshotRepo.ListRange(ctx, articleID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.VelocityDTO{
		ArticleID:    articleID,
		EventTime:    eventTime,
		WindowHours:  math.Abs(hoursOffset),
		ViewsPerHour: util.Round2(velocityFromRange(snaps, hoursOffset)),
	}, nil
}

func (s *velocityServiceImpl) RecordMilestone(ctx context.Context, articleID uint64, eventType, description string, occurredAt time.Time) (*dto.MilestoneDTO, error) {
	snap, err := s.snapshotRepo.GetLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrArticleNotFound
	}

	before, err := s.Velocity(ctx, articleID, occurredAt, -24)
	if err != nil {
		return nil, err
	}
	after, err := s.Velocity(ctx, articleID, occurredAt, 24)
	if err != nil {
		return nil, err
	}

	event := &model.MilestoneEvent{
		ArticleID:      articleID,
		EventType:      eventType,
		Description:    description,
		OccurredAt:     occurredAt,
		VelocityBefore: before.ViewsPerHour,
		VelocityAfter:  after.ViewsPerHour,
	}
	if err := s.milestoneRepo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}

	milestoneDTO := &dto.MilestoneDTO{}
	if err := copier.Copy(milestoneDTO, event); err != nil {
		return nil, err
	}
	return milestoneDTO, nil
}

// detectRestart 复苏判定: 近窗口浏览不低于门槛,
// 且相对前一窗口的增幅达到设定比例。基数为零不判定。
func detectRestart(baseline, current, minViews int, growthRatio float64) (bool, float64) {
	if baseline <= 0 {
		return false, 0
	}
	ratio := float64(current-baseline) / float64(baseline)
	return current >= minViews && ratio >= growthRatio, ratio
}

func (s *velocityServiceImpl) DetectRestarts(ctx context.Context) ([]*dto.RestartDTO, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	now := util.GetMidnight(time.Now()).AddDate(0, 0, 1)
	currentFrom := now.AddDate(0, 0, -s.cfg.RestartWindowDays)
	baselineFrom := now.AddDate(0, 0, -2*s.cfg.RestartWindowDays)

	results := make([]*dto.RestartDTO, 0)
	for _, snap := range snapshots {
		if snap.IsDeleted {
			continue
		}
		currentStats, err := s.dailyRepo.GetReadStats(ctx, snap.ArticleID, currentFrom)
		if err != nil {
			log.WarnContext(ctx, "restart check: load current window failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		totalStats, err := s.dailyRepo.GetReadStats(ctx, snap.ArticleID, baselineFrom)
		if err != nil {
			log.WarnContext(ctx, "restart check: load baseline window failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}

		current := int(currentStats.TotalPageViews)
		baseline := int(totalStats.TotalPageViews - currentStats.TotalPageViews)

		restarted, ratio := detectRestart(baseline, current, s.cfg.RestartMinViews, s.cfg.RestartGrowthRatio)
		if !restarted {
			continue
		}
		results = append(results, &dto.RestartDTO{
			ArticleID:     snap.ArticleID,
			Title:         snap.Title,
			BaselineViews: baseline,
			CurrentViews:  current,
			GrowthRatio:   util.Round2(ratio),
			Restarted:     true,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].GrowthRatio != results[j].GrowthRatio {
			return results[i].GrowthRatio > results[j].GrowthRatio
		}
		return results[i].ArticleID < results[j].ArticleID
	})
	return results, nil
}

func (s *velocityServiceImpl) ListMilestones(ctx context.Context, articleID uint64) ([]*dto.MilestoneDTO, error) {
	events, err := s.milestoneRepo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MilestoneDTO, 0, len(events))
	for _, e := range events {
		item := &dto.MilestoneDTO{}
		if err := copier.Copy(item, e); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *velocityServiceImpl) ListRecentMilestones(ctx context.Context, days int) ([]*dto.MilestoneDTO, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}
	events, err := s.milestoneRepo.ListRecent(ctx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MilestoneDTO, 0, len(events))
	for _, e := range events {
		item := &dto.MilestoneDTO{}
		if err := copier.Copy(item, e); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
