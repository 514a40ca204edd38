package dto

import "time"

// ClassifyResultDTO 单篇文章的归类结果
type ClassifyResultDTO struct {
	ArticleID       uint64   `json:"article_id"`
	ThemeID         uint64   `json:"theme_id"`
	ThemeName       string   `json:"theme_name"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// ClassifyAllDTO 批量归类的执行汇总
type ClassifyAllDTO struct {
	Classified int `json:"classified"`
	Skipped    int `json:"skipped"`
}

// SimilarArticleDTO 同主题相近文章
type SimilarArticleDTO struct {
	ArticleID  uint64   `json:"article_id"`
	Title      string   `json:"title"`
	ThemeID    uint64   `json:"theme_id"`
	SharedTags []string `json:"shared_tags"`
	Views      int      `json:"views"`
}

// ThemeReportItemDTO 单主题的聚合表现
type ThemeReportItemDTO struct {
	ThemeID        uint64  `json:"theme_id"`
	ThemeName      string  `json:"theme_name"`
	ArticleCount   int     `json:"article_count"`
	TotalViews     int     `json:"total_views"`
	TotalReactions int     `json:"total_reactions"`
	AvgViews       float64 `json:"avg_views"`
	EngagementRate float64 `json:"engagement_rate"`
}

// ThemeReportDTO 主题报表返回包装
type ThemeReportDTO struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Items       []*ThemeReportItemDTO `json:"items"`
}
