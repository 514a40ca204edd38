package repository

import (
	"Pulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type MilestoneRepo interface {
	SaveEvent(ctx context.Context, event *model.MilestoneEvent) error
	ListByArticle(ctx context.Context, articleID uint64) ([]*model.MilestoneEvent, error)
	ListRecent(ctx context.Context, since time.Time) ([]*model.MilestoneEvent, error)
}

type milestoneRepoImpl struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepo {
	return &milestoneRepoImpl{db: db}
}

func (r *milestoneRepoImpl) SaveEvent(ctx context.Context, event *model.MilestoneEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *milestoneRepoImpl) ListByArticle(ctx context.Context, articleID uint64) ([]*model.MilestoneEvent, error) {
	events := make([]*model.MilestoneEvent, 0)
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *milestoneRepoImpl) ListRecent(ctx context.Context, since time.Time) ([]*model.MilestoneEvent, error) {
	events := make([]*model.MilestoneEvent, 0)
	err := r.db.WithContext(ctx).
		Where("occurred_at >= ?", since).
		Order("occurred_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
