package main

import (
	"Pulse/internal/api/config"
	"Pulse/internal/pkg/database"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/service"
	"Pulse/internal/wire"
	"context"
	"errors"
	log "log/slog"

	"github.com/google/uuid"
)

// 一次性执行完整采集流水线, 供容器任务或手工运维使用。
// 已有实例持锁时直接正常退出。
func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	logger.InitLogger()

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	if err = database.AutoMigrate(db); err != nil {
		log.Error("Fatal error: failed to migrate database schema", "err", err)
		panic(err)
	}

	if err = redis.InitRedis(cfg.Redis); err != nil {
		log.Error("Fatal error: failed to create redis connection", "err", err)
		panic(err)
	}

	app, err := wire.BuildApplication(db, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	traceID := "sync-once-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err = app.SyncJob.Execute(ctx, traceID); err != nil {
		if errors.Is(err, service.ErrSyncRunning) {
			log.InfoContext(ctx, "another sync instance holds the lock, nothing to do")
			return
		}
		log.ErrorContext(ctx, "sync pipeline failed", "err", err)
		panic(err)
	}
}
