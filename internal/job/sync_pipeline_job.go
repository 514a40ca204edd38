package job

import (
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const syncLockTTL = 30 * time.Minute

// SyncPipelineJob 采集与派生全流程: 快照 -> 日报/评论/关注者 -> 主题归类 -> 情感分析 -> 指标缓存
type SyncPipelineJob struct {
	devtoSvc     service.DevtoService
	themeSvc     service.ThemeService
	sentimentSvc service.SentimentService
	analyticsSvc service.AnalyticsService
	velocitySvc  service.VelocityService
}

func NewSyncPipelineJob(
	devtoSvc service.DevtoService,
	themeSvc service.ThemeService,
	sentimentSvc service.SentimentService,
	analyticsSvc service.AnalyticsService,
	velocitySvc service.VelocityService,
) *SyncPipelineJob {
	return &SyncPipelineJob{
		devtoSvc:     devtoSvc,
		themeSvc:     themeSvc,
		sentimentSvc: sentimentSvc,
		analyticsSvc: analyticsSvc,
		velocitySvc:  velocitySvc,
	}
}

func (s *SyncPipelineJob) Run() {
	traceID := "job-sync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.Execute(ctx, traceID); err != nil {
		if errors.Is(err, service.ErrSyncRunning) {
			log.InfoContext(ctx, "sync pipeline already running, skip this round")
			return
		}
		log.ErrorContext(ctx, "sync pipeline failed", "err", err)
	}
}

// Trigger 异步触发一次流水线, 锁被占用时立即返回 ErrSyncRunning
func (s *SyncPipelineJob) Trigger(traceID string) error {
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.SyncPipelineLock, traceID, syncLockTTL, 0)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrSyncRunning
	}

	go func() {
		defer redis.UnLock(ctx, consts.SyncPipelineLock, traceID)
		s.runPhases(ctx)
	}()
	return nil
}

// Execute 同步执行整条流水线, 供 cron 与一次性命令复用
func (s *SyncPipelineJob) Execute(ctx context.Context, traceID string) error {
	ok, err := redis.TryLock(ctx, consts.SyncPipelineLock, traceID, syncLockTTL, 0)
	if err != nil {
		return err
	}
	if !ok {
		return service.ErrSyncRunning
	}
	defer redis.UnLock(ctx, consts.SyncPipelineLock, traceID)

	s.runPhases(ctx)
	return nil
}

// runPhases 单阶段失败只记日志, 不阻断后续阶段
func (s *SyncPipelineJob) runPhases(ctx context.Context) {
	started := time.Now()
	log.InfoContext(ctx, "sync pipeline started")

	if _, err := s.devtoSvc.SyncSnapshots(ctx); err != nil {
		log.ErrorContext(ctx, "sync snapshots phase failed", "err", err)
	}
	if _, err := s.devtoSvc.SyncDailyAnalytics(ctx); err != nil {
		log.ErrorContext(ctx, "sync daily analytics phase failed", "err", err)
	}
	if _, err := s.devtoSvc.SyncReferrers(ctx); err != nil {
		log.ErrorContext(ctx, "sync referrers phase failed", "err", err)
	}
	if _, err := s.devtoSvc.SyncComments(ctx); err != nil {
		log.ErrorContext(ctx, "sync comments phase failed", "err", err)
	}
	if _, err := s.devtoSvc.SyncFollowers(ctx); err != nil {
		log.ErrorContext(ctx, "sync followers phase failed", "err", err)
	}

	if err := s.themeSvc.SeedDefaultThemes(ctx); err != nil {
		log.ErrorContext(ctx, "seed themes phase failed", "err", err)
	}
	if _, err := s.themeSvc.ClassifyAll(ctx); err != nil {
		log.ErrorContext(ctx, "classify articles phase failed", "err", err)
	}

	if _, err := s.sentimentSvc.AnalyzePending(ctx); err != nil {
		log.ErrorContext(ctx, "sentiment analysis phase failed", "err", err)
	}

	if restarts, err := s.velocitySvc.DetectRestarts(ctx); err != nil {
		log.ErrorContext(ctx, "restart detection phase failed", "err", err)
	} else if len(restarts) > 0 {
		log.InfoContext(ctx, "restarted articles detected", "count", len(restarts))
	}

	count, err := s.analyticsSvc.RefreshStatsCache(ctx)
	if err != nil {
		log.ErrorContext(ctx, "refresh stats cache phase failed", "err", err)
	}

	log.InfoContext(ctx, "sync pipeline finished", "refreshed", count, "cost", time.Since(started).String())
}
