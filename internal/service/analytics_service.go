package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type AnalyticsService interface {
	// GetQualityRank 按质量分输出排行, limit 截断
	GetQualityRank(ctx context.Context, limit int) (*dto.QualityRankDTO, error)
	// ScoreArticle 对单篇文章评分, 数据不足时返回明确错误
	ScoreArticle(ctx context.Context, articleID uint64) (*dto.QualityItemDTO, error)
	// GetReadTime 单篇文章的阅读深度分析
	GetReadTime(ctx context.Context, articleID uint64, days int) (*dto.ReadTimeDTO, error)
	// GetReactionGaps 分类型互动与生涯总量的缺口报表
	GetReactionGaps(ctx context.Context) ([]*dto.ReactionGapDTO, error)
	// GetOverview 当期与上一个等长周期的全局对比
	GetOverview(ctx context.Context, days int) (*dto.OverviewDTO, error)
	// GetReferrers 某篇文章最近一轮采集的来源分布
	GetReferrers(ctx context.Context, articleID uint64) (*dto.ReferrerReportDTO, error)
	// GetLongTailChampions 发布超过门槛天数且近窗口流量仍高于阈值的文章
	GetLongTailChampions(ctx context.Context, limit int) ([]*dto.LongTailItemDTO, error)
	// GetTopPerformers 直接读缓存表的综合表现榜
	GetTopPerformers(ctx context.Context, limit int) ([]*dto.TopPerformerDTO, error)
	// RefreshStatsCache 重算派生指标缓存表, 返回刷新的文章数
	RefreshStatsCache(ctx context.Context) (int, error)
}

type analyticsServiceImpl struct {
	snapshotRepo   repository.SnapshotRepo
	dailyRepo      repository.DailyAnalyticRepo
	statsCacheRepo repository.StatsCacheRepo
	referrerRepo   repository.ReferrerRepo
	attribution    AttributionService
	cfg            config.AnalyticsConfig
}

func NewAnalyticsService(
	snapshotRepo repository.SnapshotRepo,
	dailyRepo repository.DailyAnalyticRepo,
	statsCacheRepo repository.StatsCacheRepo,
	referrerRepo repository.ReferrerRepo,
	attribution AttributionService,
	cfg config.AnalyticsConfig,
) AnalyticsService {
	return &analyticsServiceImpl{
		snapshotRepo:   snapshotRepo,
		dailyRepo:      dailyRepo,
		statsCacheRepo: statsCacheRepo,
		referrerRepo:   referrerRepo,
		attribution:    attribution,
		cfg:            cfg,
	}
}

// qualityInput 评分所需的全部原始量
type qualityInput struct {
	TotalReadSeconds   int64
	TotalPageViews     int64
	ReadingTimeMinutes int
	Views              int
	Reactions          int
	Comments           int
}

// qualityResult 评分中间量与最终分
type qualityResult struct {
	AvgReadSeconds float64
	CompletionRate float64
	EngagementRate float64
	QualityScore   float64
}

// computeQuality 质量分核心算法
// 平均阅读时长必须用窗口内总秒数除以总浏览量, 不能把日均值再平均;
// 互动率分母是生涯浏览量; 0 浏览的文章评不出分, ok 返回 false
func computeQuality(in qualityInput) (qualityResult, bool) {
	var out qualityResult

	if in.TotalPageViews == 0 || in.Views == 0 {
		return out, false
	}

	readingMinutes := in.ReadingTimeMinutes
	if readingMinutes < 1 {
		readingMinutes = 1
	}

	out.AvgReadSeconds = float64(in.TotalReadSeconds) / float64(in.TotalPageViews)

	completion := out.AvgReadSeconds / float64(readingMinutes*60) * 100
	if completion > 100 {
		completion = 100
	}
	out.CompletionRate = completion

	out.EngagementRate = float64(in.Reactions+in.Comments) / float64(in.Views) * 100

	engagementPart := out.EngagementRate
	if engagementPart > 20 {
		engagementPart = 20
	}
	score := completion*0.7 + engagementPart*1.5
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	out.QualityScore = score

	return out, true
}

func (s *analyticsServiceImpl) GetQualityRank(ctx context.Context, limit int) (*dto.QualityRankDTO, error) {
	// 全量榜单进缓存, limit 在读出后截断
	cacheKey := consts.QualityRankKey + "all"
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		var rank dto.QualityRankDTO
		if err := json.Unmarshal([]byte(cached), &rank); err == nil {
			if limit > 0 && len(rank.Items) > limit {
				rank.Items = rank.Items[:limit]
			}
			return &rank, nil
		}
	}

	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	windowStart := time.Now().AddDate(0, 0, -s.cfg.QualityWindowDays)
	items := make([]*dto.QualityItemDTO, 0, len(snapshots))

	for _, snap := range snapshots {
		if snap.IsDeleted || snap.Views < s.cfg.MinViews {
			continue
		}
		item, err := s.scoreSnapshot(ctx, snap, windowStart)
		if err != nil {
			log.WarnContext(ctx, "score article failed, skip", "article_id", snap.ArticleID, "err", err)
			continue
		}
		if item == nil {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].QualityScore != items[j].QualityScore {
			return items[i].QualityScore > items[j].QualityScore
		}
		return items[i].ArticleID < items[j].ArticleID
	})

	rank := &dto.QualityRankDTO{WindowDays: s.cfg.QualityWindowDays, Items: items}
	if payload, err := json.Marshal(rank); err == nil {
		_ = redis.SetWithMidnightExpiration(ctx, cacheKey, payload)
	}

	if limit > 0 && len(rank.Items) > limit {
		trimmed := *rank
		trimmed.Items = rank.Items[:limit]
		return &trimmed, nil
	}
	return rank, nil
}

func (s *analyticsServiceImpl) ScoreArticle(ctx context.Context, articleID uint64) (*dto.QualityItemDTO, error) {
	snap, err := s.snapshotRepo.GetLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrSnapshotNotFound
	}

	windowStart := time.Now().AddDate(0, 0, -s.cfg.QualityWindowDays)
	item, err := s.scoreSnapshot(ctx, snap, windowStart)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNoViewData
	}
	return item, nil
}

// scoreSnapshot 数据不足时返回 (nil, nil), 表示该文章本轮不参与评分
func (s *analyticsServiceImpl) scoreSnapshot(ctx context.Context, snap *model.ArticleSnapshot, windowStart time.Time) (*dto.QualityItemDTO, error) {
	stats, err := s.dailyRepo.GetReadStats(ctx, snap.ArticleID, windowStart)
	if err != nil {
		return nil, err
	}

	result, ok := computeQuality(qualityInput{
		TotalReadSeconds:   stats.TotalReadSeconds,
		TotalPageViews:     stats.TotalPageViews,
		ReadingTimeMinutes: snap.ReadingTimeMinutes,
		Views:              snap.Views,
		Reactions:          snap.Reactions,
		Comments:           snap.Comments,
	})
	if !ok {
		return nil, nil
	}

	return &dto.QualityItemDTO{
		ArticleID:      snap.ArticleID,
		Title:          snap.Title,
		Views:          snap.Views,
		Reactions:      snap.Reactions,
		Comments:       snap.Comments,
		AvgReadSeconds: util.Round2(result.AvgReadSeconds),
		CompletionRate: util.Round2(result.CompletionRate),
		EngagementRate: util.Round2(result.EngagementRate),
		QualityScore:   util.Round2(result.QualityScore),
	}, nil
}

func (s *analyticsServiceImpl) GetReadTime(ctx context.Context, articleID uint64, days int) (*dto.ReadTimeDTO, error) {
	snap, err := s.snapshotRepo.GetLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrSnapshotNotFound
	}

	since := util.GetMidnight(time.Now()).AddDate(0, 0, -days)
	rows, err := s.dailyRepo.ListByArticle(ctx, articleID, since)
	if err != nil {
		return nil, err
	}

	var totalRead, totalViews int64
	points := make([]*dto.ReadTimePointDTO, 0, len(rows))
	for _, row := range rows {
		totalRead += int64(row.TotalReadTimeSeconds)
		totalViews += int64(row.PageViews)
		points = append(points, &dto.ReadTimePointDTO{
			Date:           row.Date.Format(consts.DateLayout),
			PageViews:      row.PageViews,
			AvgReadSeconds: util.Round2(row.AvgReadTimeSeconds),
		})
	}

	out := &dto.ReadTimeDTO{
		ArticleID:          articleID,
		Title:              snap.Title,
		ReadingTimeMinutes: snap.ReadingTimeMinutes,
		Points:             points,
	}
	if totalViews > 0 {
		avg := float64(totalRead) / float64(totalViews)
		readingMinutes := snap.ReadingTimeMinutes
		if readingMinutes < 1 {
			readingMinutes = 1
		}
		completion := avg / float64(readingMinutes*60) * 100
		if completion > 100 {
			completion = 100
		}
		out.WeightedAvgSeconds = util.Round2(avg)
		out.CompletionRate = util.Round2(completion)
	}
	return out, nil
}

func (s *analyticsServiceImpl) GetReactionGaps(ctx context.Context) ([]*dto.ReactionGapDTO, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	gaps := make([]*dto.ReactionGapDTO, 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.IsDeleted {
			continue
		}
		like, readinglist, unicorn, err := s.dailyRepo.SumReactionBreakdown(ctx, snap.ArticleID)
		if err != nil {
			log.WarnContext(ctx, "reaction gap calc failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		tracked := like + readinglist + unicorn
		gaps = append(gaps, &dto.ReactionGapDTO{
			ArticleID:          snap.ArticleID,
			Title:              snap.Title,
			LifetimeReactions:  snap.Reactions,
			TrackedLike:        like,
			TrackedReadinglist: readinglist,
			TrackedUnicorn:     unicorn,
			TrackedTotal:       tracked,
			Gap:                int64(snap.Reactions) - tracked,
		})
	}
	return gaps, nil
}

func (s *analyticsServiceImpl) GetOverview(ctx context.Context, days int) (*dto.OverviewDTO, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}

	now := util.GetMidnight(time.Now()).AddDate(0, 0, 1)
	currentFrom := now.AddDate(0, 0, -days)
	previousFrom := now.AddDate(0, 0, -2*days)

	current, err := s.dailyRepo.GetPeriodTotals(ctx, currentFrom, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.dailyRepo.GetPeriodTotals(ctx, previousFrom, currentFrom)
	if err != nil {
		return nil, err
	}

	return &dto.OverviewDTO{
		Days: days,
		Current: dto.PeriodDTO{
			PageViews:   current.PageViews,
			ReadSeconds: current.ReadSeconds,
			Reactions:   current.Reactions,
			Comments:    current.Comments,
		},
		Previous: dto.PeriodDTO{
			PageViews:   previous.PageViews,
			ReadSeconds: previous.ReadSeconds,
			Reactions:   previous.Reactions,
			Comments:    previous.Comments,
		},
		PageViews:   metricDelta(current.PageViews, previous.PageViews),
		ReadSeconds: metricDelta(current.ReadSeconds, previous.ReadSeconds),
		Reactions:   metricDelta(current.Reactions, previous.Reactions),
		Comments:    metricDelta(current.Comments, previous.Comments),
	}, nil
}

func metricDelta(current, previous int64) dto.MetricDeltaDTO {
	return dto.MetricDeltaDTO{
		Absolute: float64(current - previous),
		Percent:  util.PercentChange(float64(current), float64(previous)),
	}
}

func (s *analyticsServiceImpl) GetReferrers(ctx context.Context, articleID uint64) (*dto.ReferrerReportDTO, error) {
	cacheKey := consts.ReferrerKey + strconv.FormatUint(articleID, 10)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		var report dto.ReferrerReportDTO
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	snap, err := s.snapshotRepo.GetLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrSnapshotNotFound
	}

	rows, err := s.referrerRepo.ListLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}

	report := &dto.ReferrerReportDTO{
		ArticleID: articleID,
		Referrers: make([]*dto.ReferrerDTO, 0, len(rows)),
	}
	for _, row := range rows {
		report.CollectedAt = row.CollectedAt
		report.Referrers = append(report.Referrers, &dto.ReferrerDTO{Domain: row.Domain, Count: row.Count})
	}

	// 来源分布只随采集轮变化, 按小时缓存足够
	if payload, err := json.Marshal(report); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, payload, time.Hour)
	}
	return report, nil
}

func (s *analyticsServiceImpl) GetLongTailChampions(ctx context.Context, limit int) ([]*dto.LongTailItemDTO, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}

	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ageCutoff := now.AddDate(0, 0, -s.cfg.LongTailMinAgeDays)
	windowStart := now.AddDate(0, 0, -s.cfg.LongTailWindowDays)

	items := make([]*dto.LongTailItemDTO, 0)
	for _, snap := range snapshots {
		if snap.IsDeleted || snap.PublishedAt.IsZero() || !snap.PublishedAt.Before(ageCutoff) {
			continue
		}
		stats, err := s.dailyRepo.GetReadStats(ctx, snap.ArticleID, windowStart)
		if err != nil {
			log.WarnContext(ctx, "load window views failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		if stats.TotalPageViews <= int64(s.cfg.LongTailMinViews) {
			continue
		}
		items = append(items, &dto.LongTailItemDTO{
			ArticleID:   snap.ArticleID,
			Title:       snap.Title,
			PublishedAt: snap.PublishedAt,
			AgeDays:     int(now.Sub(snap.PublishedAt).Hours() / 24),
			ViewsWindow: stats.TotalPageViews,
			WindowDays:  s.cfg.LongTailWindowDays,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].ViewsWindow != items[j].ViewsWindow {
			return items[i].ViewsWindow > items[j].ViewsWindow
		}
		return items[i].ArticleID < items[j].ArticleID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *analyticsServiceImpl) GetTopPerformers(ctx context.Context, limit int) ([]*dto.TopPerformerDTO, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}

	rows, err := s.statsCacheRepo.ListByQuality(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TopPerformerDTO, 0, len(rows))
	for _, row := range rows {
		item := &dto.TopPerformerDTO{}
		if err := copier.Copy(item, row); err != nil {
			log.WarnContext(ctx, "copy stats cache row failed, skip", "article_id", row.ArticleID, "err", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *analyticsServiceImpl) RefreshStatsCache(ctx context.Context) (int, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return 0, err
	}

	// 7 天归因跑一次, 拆到各文章
	attributed := make(map[uint64]float64)
	if rollup, err := s.attribution.Rollup(ctx, 7); err != nil {
		log.WarnContext(ctx, "attribution rollup failed, cache refresh skips attribution fields", "err", err)
	} else {
		for _, a := range rollup.Articles {
			attributed[a.ArticleID] = a.AttributedFollowers
		}
	}

	windowStart := time.Now().AddDate(0, 0, -s.cfg.QualityWindowDays)
	refreshed := 0
	for _, snap := range snapshots {
		if snap.IsDeleted {
			continue
		}
		row := &model.ArticleStatsCache{
			ArticleID:             snap.ArticleID,
			Title:                 snap.Title,
			Views:                 snap.Views,
			Reactions:             snap.Reactions,
			Comments:              snap.Comments,
			AttributedFollowers7d: attributed[snap.ArticleID],
			RefreshedAt:           time.Now(),
		}

		item, err := s.scoreSnapshot(ctx, snap, windowStart)
		if err != nil {
			log.WarnContext(ctx, "refresh cache: score failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		if item != nil {
			row.QualityScore = item.QualityScore
			row.CompletionRate = item.CompletionRate
			row.EngagementRate = item.EngagementRate
		}

		if err := s.statsCacheRepo.SaveOrUpdate(ctx, row); err != nil {
			log.WarnContext(ctx, "refresh cache: save failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		refreshed++
	}

	// 报表类 redis 缓存一并失效
	_ = redis.DeleteKey(ctx, consts.QualityRankKey+"all")
	_ = redis.DeleteKey(ctx, consts.ThemeReportKey)
	_ = redis.DeleteKey(ctx, consts.SentimentStatsKey)

	return refreshed, nil
}
