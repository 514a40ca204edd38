package cron

import (
	"Pulse/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	syncJob      *job.SyncPipelineJob
	sentimentJob *job.SentimentJob
}

func NewCronManager(syncJob *job.SyncPipelineJob, sentimentJob *job.SentimentJob) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		syncJob:      syncJob,
		sentimentJob: sentimentJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 全量同步每天跑一次, 情感分析每 6 小时补一轮增量
	if _, err := s.engine.AddJob("@daily", s.syncJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 6h", s.sentimentJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
