package job

import (
	"Pulse/internal/api/config"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// maxSentimentRounds 单次任务的批次上限, 防止积压过多时长期占锁
const maxSentimentRounds = 20

type SentimentJob struct {
	sentimentSvc service.SentimentService
	batchSize    int
}

func NewSentimentJob(sentimentSvc service.SentimentService, cfg config.AnalyticsConfig) *SentimentJob {
	return &SentimentJob{
		sentimentSvc: sentimentSvc,
		batchSize:    cfg.SentimentBatchSize,
	}
}

func (s *SentimentJob) Run() {
	traceID := "job-sentiment-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.SentimentLock, traceID, 15*time.Minute, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire sentiment lock error", "err", err)
		return
	}
	if !ok {
		return
	}
	defer redis.UnLock(ctx, consts.SentimentLock, traceID)

	total := 0
	for round := 0; round < maxSentimentRounds; round++ {
		batch, err := s.sentimentSvc.AnalyzePending(ctx)
		if err != nil {
			log.ErrorContext(ctx, "sentiment batch failed", "err", err)
			return
		}

		handled := batch.Processed + batch.Failed
		total += handled
		// 不满一批说明积压已清空
		if handled < s.batchSize {
			break
		}
	}

	if total > 0 {
		log.InfoContext(ctx, "sentiment job finished", "handled", total)
	}
}
