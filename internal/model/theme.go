package model

import "time"

// Theme 内容主题, Keywords 为小写关键词表
type Theme struct {
	ID       uint64   `gorm:"primaryKey"`
	Name     string   `gorm:"type:varchar(100);not null;uniqueIndex:idx_theme_name" json:"name"`
	Keywords []string `gorm:"type:json;serializer:json" json:"keywords"`
}

func (Theme) TableName() string {
	return "themes"
}

// ArticleTheme 文章与主题的归类结果, 每篇文章最多一条, 重新分类直接覆盖
type ArticleTheme struct {
	ArticleID       uint64    `gorm:"primaryKey" json:"articleId"`
	ThemeID         uint64    `gorm:"not null;index:idx_theme_id" json:"themeId"`
	ConfidenceScore float64   `gorm:"not null;default:0" json:"confidenceScore"`
	MatchedKeywords []string  `gorm:"type:json;serializer:json" json:"matchedKeywords"`
	ClassifiedAt    time.Time `json:"classifiedAt"`
}

func (ArticleTheme) TableName() string {
	return "article_themes"
}
