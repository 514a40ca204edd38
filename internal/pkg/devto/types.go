package devto

import "time"

// Article /articles/me/all 返回的文章条目, 只保留用到的字段
type Article struct {
	ID                   uint64     `json:"id"`
	Title                string     `json:"title"`
	Slug                 string     `json:"slug"`
	PublishedAt          *time.Time `json:"published_at"`
	PageViewsCount       int        `json:"page_views_count"`
	PublicReactionsCount int        `json:"public_reactions_count"`
	CommentsCount        int        `json:"comments_count"`
	ReadingTimeMinutes   int        `json:"reading_time_minutes"`
	TagList              []string   `json:"tag_list"`
}

// Follower /followers/users 返回的关注者条目
type Follower struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Comment /comments?a_id= 返回的评论, IDCode 为平台字符串主键
type Comment struct {
	IDCode    string      `json:"id_code"`
	CreatedAt time.Time   `json:"created_at"`
	BodyHTML  string      `json:"body_html"`
	User      CommentUser `json:"user"`
	Children  []Comment   `json:"children"`
}

type CommentUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ReferrerStats /analytics/referrers 返回的流量来源, 计数为生涯累计值
type ReferrerStats struct {
	Domains []ReferrerDomain `json:"domains"`
}

type ReferrerDomain struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// DailyStat /analytics/historical 返回的单日统计
type DailyStat struct {
	PageViews struct {
		Total                    int     `json:"total"`
		AverageReadTimeInSeconds float64 `json:"average_read_time_in_seconds"`
		TotalReadTimeInSeconds   int     `json:"total_read_time_in_seconds"`
	} `json:"page_views"`
	Reactions struct {
		Total       int `json:"total"`
		Like        int `json:"like"`
		Readinglist int `json:"readinglist"`
		Unicorn     int `json:"unicorn"`
	} `json:"reactions"`
	Comments struct {
		Total int `json:"total"`
	} `json:"comments"`
	Follows struct {
		Total int `json:"total"`
	} `json:"follows"`
}
