package database

import (
	"Pulse/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate 建表与索引同步, 启动时执行
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ArticleSnapshot{},
		&model.DailyAnalytic{},
		&model.FollowerEvent{},
		&model.ArticleReferrer{},
		&model.Comment{},
		&model.CommentInsight{},
		&model.Theme{},
		&model.ArticleTheme{},
		&model.ArticleStatsCache{},
		&model.MilestoneEvent{},
	)
}
