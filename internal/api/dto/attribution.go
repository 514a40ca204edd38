package dto

import "time"

// AttributionShareDTO 单篇文章在一次关注增长中的份额
type AttributionShareDTO struct {
	ArticleID           uint64  `json:"article_id"`
	Title               string  `json:"title"`
	ViewsGain           int     `json:"views_gain"`
	Share               float64 `json:"share"`
	AttributedFollowers float64 `json:"attributed_followers"`
}

// AttributionEventDTO 单次关注增长事件的归因明细
type AttributionEventDTO struct {
	OccurredAt   time.Time              `json:"occurred_at"`
	NewFollowers int                    `json:"new_followers"`
	Unattributed bool                   `json:"unattributed"`
	Shares       []*AttributionShareDTO `json:"shares"`
}

// AttributionRollupDTO 时间窗内逐事件归因的累计结果
type AttributionRollupDTO struct {
	Days              int                    `json:"days"`
	TotalNewFollowers int                    `json:"total_new_followers"`
	UnattributedCount int                    `json:"unattributed_count"`
	Articles          []*AttributionShareDTO `json:"articles"`
}
