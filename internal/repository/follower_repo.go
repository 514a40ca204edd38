package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerRepo interface {
	SaveEvent(ctx context.Context, event *model.FollowerEvent) error
	GetLastEvent(ctx context.Context) (*model.FollowerEvent, error)
	ListPositiveDeltas(ctx context.Context, since time.Time) ([]*model.FollowerEvent, error)
}

type followerRepoImpl struct {
	db *gorm.DB
}

func NewFollowerRepository(db *gorm.DB) FollowerRepo {
	return &followerRepoImpl{db: db}
}

// SaveEvent 同一采集时刻重复写入直接忽略
func (r *followerRepoImpl) SaveEvent(ctx context.Context, event *model.FollowerEvent) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collected_at"}},
		DoNothing: true,
	}).Create(event).Error
}

// GetLastEvent 最近一次采样, 没有历史时返回 nil
func (r *followerRepoImpl) GetLastEvent(ctx context.Context) (*model.FollowerEvent, error) {
	var event model.FollowerEvent
	err := r.db.WithContext(ctx).
		Order("collected_at DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// ListPositiveDeltas 时间窗内有新增关注的采样点, 归因只看正增量
func (r *followerRepoImpl) ListPositiveDeltas(ctx context.Context, since time.Time) ([]*model.FollowerEvent, error) {
	events := make([]*model.FollowerEvent, 0)
	err := r.db.WithContext(ctx).
		Where("collected_at >= ? AND new_followers_since_last > 0", since).
		Order("collected_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
