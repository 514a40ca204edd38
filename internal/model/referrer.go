package model

import "time"

// ArticleReferrer 流量来源的时序快照, 每轮采集整体落一份, 计数是生涯累计值
type ArticleReferrer struct {
	ID          uint64    `gorm:"primaryKey"`
	ArticleID   uint64    `gorm:"not null;index:idx_referrer_article_domain_time,unique" json:"articleId"`
	Domain      string    `gorm:"type:varchar(255);not null;index:idx_referrer_article_domain_time,unique" json:"domain"`
	Count       int       `gorm:"not null;default:0" json:"count"`
	CollectedAt time.Time `gorm:"not null;index:idx_referrer_article_domain_time,unique" json:"collectedAt"`
}

func (ArticleReferrer) TableName() string {
	return "referrers"
}
