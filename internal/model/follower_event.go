package model

import "time"

// FollowerEvent 关注者总数采样, Delta 为与上次采样的差值
type FollowerEvent struct {
	ID            uint64    `gorm:"primaryKey"`
	CollectedAt   time.Time `gorm:"not null;uniqueIndex:idx_collected_at" json:"collectedAt"`
	FollowerCount int       `gorm:"not null;default:0" json:"followerCount"`
	Delta         int       `gorm:"not null;default:0;column:new_followers_since_last" json:"delta"`
}

func (FollowerEvent) TableName() string {
	return "follower_events"
}
