package devto

import (
	"Pulse/internal/api/config"
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Client dev.to 开放接口客户端, 含两个未公开的 analytics 端点
type Client struct {
	http     *resty.Client
	pageSize int
	delay    time.Duration
}

func NewClient(cfg config.DevtoConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSecs) * time.Second).
		SetHeader("api-key", cfg.ApiKey).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     client,
		pageSize: cfg.PageSize,
		delay:    time.Duration(cfg.DelayMs) * time.Millisecond,
	}
}

// FetchArticles 拉取自己名下全部文章(含未发布)
func (s *Client) FetchArticles(ctx context.Context) ([]Article, error) {
	var articles []Article
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("per_page", "1000").
		SetResult(&articles).
		Get("/articles/me/all")
	if err != nil {
		return nil, errors.Wrap(err, "拉取文章列表失败")
	}
	if resp.IsError() {
		return nil, errors.Errorf("拉取文章列表失败: http %d", resp.StatusCode())
	}
	return articles, nil
}

// FetchFollowers 分页拉取全部关注者
func (s *Client) FetchFollowers(ctx context.Context) ([]Follower, error) {
	var all []Follower
	for page := 1; ; page++ {
		var batch []Follower
		resp, err := s.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"per_page": strconv.Itoa(s.pageSize),
				"page":     strconv.Itoa(page),
			}).
			SetResult(&batch).
			Get("/followers/users")
		if err != nil {
			return nil, errors.Wrap(err, "拉取关注者失败")
		}
		if resp.IsError() {
			return nil, errors.Errorf("拉取关注者失败: http %d", resp.StatusCode())
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		s.sleep(ctx)
	}
	return all, nil
}

// FetchComments 拉取单篇文章的评论树
func (s *Client) FetchComments(ctx context.Context, articleID uint64) ([]Comment, error) {
	var comments []Comment
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("a_id", strconv.FormatUint(articleID, 10)).
		SetResult(&comments).
		Get("/comments")
	if err != nil {
		return nil, errors.Wrapf(err, "拉取评论失败 article_id=%d", articleID)
	}
	if resp.IsError() {
		return nil, errors.Errorf("拉取评论失败 article_id=%d: http %d", articleID, resp.StatusCode())
	}
	return comments, nil
}

// FetchHistoricalAnalytics 拉取单篇文章的逐日统计, 键为 YYYY-MM-DD
// 未公开端点, 必须带 start/end
func (s *Client) FetchHistoricalAnalytics(ctx context.Context, articleID uint64, start, end time.Time) (map[string]DailyStat, error) {
	var stats map[string]DailyStat
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"article_id": strconv.FormatUint(articleID, 10),
			"start":      start.Format("2006-01-02"),
			"end":        end.Format("2006-01-02"),
		}).
		SetResult(&stats).
		Get("/analytics/historical")
	if err != nil {
		return nil, errors.Wrapf(err, "拉取历史统计失败 article_id=%d", articleID)
	}
	if resp.IsError() {
		// 该端点对部分文章会拒绝, 按无数据处理
		return nil, nil
	}
	return stats, nil
}

// FetchReferrers 拉取单篇文章的流量来源
func (s *Client) FetchReferrers(ctx context.Context, articleID uint64) (*ReferrerStats, error) {
	var referrers ReferrerStats
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("article_id", strconv.FormatUint(articleID, 10)).
		SetResult(&referrers).
		Get("/analytics/referrers")
	if err != nil {
		return nil, errors.Wrapf(err, "拉取流量来源失败 article_id=%d", articleID)
	}
	if resp.IsError() {
		return nil, nil
	}
	return &referrers, nil
}

// sleep 接口限流间隔, ctx 取消时立即返回
func (s *Client) sleep(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.delay):
	}
}

// Delay 返回限流间隔, 供逐篇循环的调用方复用
func (s *Client) Delay() time.Duration {
	return s.delay
}
