package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/devto"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type DevtoService interface {
	// SyncSnapshots 为每篇文章追加一条指标快照
	SyncSnapshots(ctx context.Context) (int, error)
	// SyncFollowers 采样关注者总数并计算增量
	SyncFollowers(ctx context.Context) (*model.FollowerEvent, error)
	// SyncComments 逐篇拉取评论, 返回新增条数
	SyncComments(ctx context.Context) (int, error)
	// SyncDailyAnalytics 逐篇拉取官方逐日统计并幂等写入
	SyncDailyAnalytics(ctx context.Context) (int, error)
	// SyncReferrers 逐篇落一份流量来源的时序快照
	SyncReferrers(ctx context.Context) (int, error)
}

type devtoServiceImpl struct {
	client       *devto.Client
	snapshotRepo repository.SnapshotRepo
	followerRepo repository.FollowerRepo
	commentRepo  repository.CommentRepo
	dailyRepo    repository.DailyAnalyticRepo
	referrerRepo repository.ReferrerRepo
	cfg          config.DevtoConfig
}

func NewDevtoService(
	client *devto.Client,
	snapshotRepo repository.SnapshotRepo,
	followerRepo repository.FollowerRepo,
	commentRepo repository.CommentRepo,
	dailyRepo repository.DailyAnalyticRepo,
	referrerRepo repository.ReferrerRepo,
	cfg config.DevtoConfig,
) DevtoService {
	return &devtoServiceImpl{
		client:       client,
		snapshotRepo: snapshotRepo,
		followerRepo: followerRepo,
		commentRepo:  commentRepo,
		dailyRepo:    dailyRepo,
		referrerRepo: referrerRepo,
		cfg:          cfg,
	}
}

func (s *devtoServiceImpl) SyncSnapshots(ctx context.Context) (int, error) {
	articles, err := s.client.FetchArticles(ctx)
	if err != nil {
		return 0, err
	}

	collectedAt := time.Now().Truncate(time.Second)
	saved := 0
	for _, article := range articles {
		snap := &model.ArticleSnapshot{
			ArticleID:          article.ID,
			CollectedAt:        collectedAt,
			Title:              article.Title,
			Slug:               article.Slug,
			Views:              article.PageViewsCount,
			Reactions:          article.PublicReactionsCount,
			Comments:           article.CommentsCount,
			ReadingTimeMinutes: article.ReadingTimeMinutes,
			Tags:               article.TagList,
			IsDeleted:          article.PublishedAt == nil,
		}
		if article.PublishedAt != nil {
			snap.PublishedAt = *article.PublishedAt
		}
		if err := s.snapshotRepo.SaveSnapshot(ctx, snap); err != nil {
			log.WarnContext(ctx, "save snapshot failed, skip article", "article_id", article.ID, "err", err)
			continue
		}
		saved++
	}

	log.InfoContext(ctx, "article snapshots synced", "total", len(articles), "saved", saved)
	return saved, nil
}

func (s *devtoServiceImpl) SyncFollowers(ctx context.Context) (*model.FollowerEvent, error) {
	followers, err := s.client.FetchFollowers(ctx)
	if err != nil {
		return nil, err
	}
	count := len(followers)

	last, err := s.followerRepo.GetLastEvent(ctx)
	if err != nil {
		return nil, err
	}

	// 首次采样没有基线, 增量记 0
	delta := 0
	if last != nil {
		delta = count - last.FollowerCount
	}

	event := &model.FollowerEvent{
		CollectedAt:   time.Now().Truncate(time.Second),
		FollowerCount: count,
		Delta:         delta,
	}
	if err := s.followerRepo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "follower sample saved", "count", count, "delta", delta)
	return event, nil
}

func (s *devtoServiceImpl) SyncComments(ctx context.Context) (int, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return 0, err
	}

	collectedAt := time.Now()
	created := 0
	for _, snap := range snapshots {
		if snap.IsDeleted {
			continue
		}
		comments, err := s.client.FetchComments(ctx, snap.ArticleID)
		if err != nil {
			log.WarnContext(ctx, "fetch comments failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		created += s.storeCommentTree(ctx, snap, comments, collectedAt)

		s.pause(ctx)
	}

	log.InfoContext(ctx, "comments synced", "created", created)
	return created, nil
}

// storeCommentTree 评论带子回复, 展平后逐条幂等落库
func (s *devtoServiceImpl) storeCommentTree(ctx context.Context, snap *model.ArticleSnapshot, comments []devto.Comment, collectedAt time.Time) int {
	created := 0
	for _, c := range comments {
		row := &model.Comment{
			CommentID:      c.IDCode,
			ArticleID:      snap.ArticleID,
			ArticleTitle:   snap.Title,
			AuthorUsername: c.User.Username,
			AuthorName:     c.User.Name,
			BodyHTML:       c.BodyHTML,
			BodyLength:     len(c.BodyHTML),
			CreatedAt:      c.CreatedAt,
			CollectedAt:    collectedAt,
		}
		isNew, err := s.commentRepo.SaveComment(ctx, row)
		if err != nil {
			log.WarnContext(ctx, "save comment failed, skip", "comment_id", c.IDCode, "err", err)
		} else if isNew {
			created++
		}
		created += s.storeCommentTree(ctx, snap, c.Children, collectedAt)
	}
	return created
}

func (s *devtoServiceImpl) SyncDailyAnalytics(ctx context.Context) (int, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return 0, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -s.cfg.HistoryDays)
	collectedAt := time.Now()

	saved := 0
	for _, snap := range snapshots {
		if snap.IsDeleted {
			continue
		}
		stats, err := s.client.FetchHistoricalAnalytics(ctx, snap.ArticleID, start, end)
		if err != nil {
			log.WarnContext(ctx, "fetch historical analytics failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		for dateStr, stat := range stats {
			date, err := time.Parse(consts.DateLayout, dateStr)
			if err != nil {
				log.WarnContext(ctx, "invalid historical date, skip row", "article_id", snap.ArticleID, "date", dateStr)
				continue
			}
			row := &model.DailyAnalytic{
				ArticleID:            snap.ArticleID,
				Date:                 date,
				PageViews:            stat.PageViews.Total,
				TotalReadTimeSeconds: stat.PageViews.TotalReadTimeInSeconds,
				AvgReadTimeSeconds:   stat.PageViews.AverageReadTimeInSeconds,
				ReactionsTotal:       stat.Reactions.Total,
				ReactionsLike:        stat.Reactions.Like,
				ReactionsReadinglist: stat.Reactions.Readinglist,
				ReactionsUnicorn:     stat.Reactions.Unicorn,
				CommentsTotal:        stat.Comments.Total,
				FollowsTotal:         stat.Follows.Total,
				CollectedAt:          collectedAt,
			}
			if err := s.dailyRepo.SaveOrUpdateDaily(ctx, row); err != nil {
				log.WarnContext(ctx, "save daily analytic failed, skip row", "article_id", snap.ArticleID, "date", dateStr, "err", err)
				continue
			}
			saved++
		}

		s.pause(ctx)
	}

	log.InfoContext(ctx, "daily analytics synced", "saved", saved)
	return saved, nil
}

func (s *devtoServiceImpl) SyncReferrers(ctx context.Context) (int, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return 0, err
	}

	collectedAt := time.Now().Truncate(time.Second)
	saved := 0
	for _, snap := range snapshots {
		if snap.IsDeleted {
			continue
		}
		stats, err := s.client.FetchReferrers(ctx, snap.ArticleID)
		if err != nil {
			log.WarnContext(ctx, "fetch referrers failed, skip article", "article_id", snap.ArticleID, "err", err)
			continue
		}
		if stats == nil {
			continue
		}
		for _, ref := range stats.Domains {
			// 站内直达流量 domain 为空, 不入库
			if ref.Domain == "" {
				continue
			}
			row := &model.ArticleReferrer{
				ArticleID:   snap.ArticleID,
				Domain:      ref.Domain,
				Count:       ref.Count,
				CollectedAt: collectedAt,
			}
			isNew, err := s.referrerRepo.SaveReferrer(ctx, row)
			if err != nil {
				log.WarnContext(ctx, "save referrer failed, skip row", "article_id", snap.ArticleID, "domain", ref.Domain, "err", err)
				continue
			}
			if isNew {
				saved++
			}
		}

		s.pause(ctx)
	}

	log.InfoContext(ctx, "referrers synced", "saved", saved)
	return saved, nil
}

func (s *devtoServiceImpl) pause(ctx context.Context) {
	if d := s.client.Delay(); d > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(d):
		}
	}
}
