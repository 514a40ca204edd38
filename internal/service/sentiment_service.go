package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/sentiment"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

type SentimentService interface {
	// AnalyzePending 对还没有分析结果的评论跑一批增量分析
	AnalyzePending(ctx context.Context) (*dto.SentimentBatchDTO, error)
	// GetStats 整体情绪分布
	GetStats(ctx context.Context) (*dto.SentimentStatsDTO, error)
	// ListSpam 被拦下的垃圾评论
	ListSpam(ctx context.Context, limit int) ([]*dto.SpamCommentDTO, error)
	// ListUnansweredQuestions 还没有回复的读者提问
	ListUnansweredQuestions(ctx context.Context) ([]*dto.QuestionDTO, error)
}

type sentimentServiceImpl struct {
	commentRepo  repository.CommentRepo
	insightRepo  repository.InsightRepo
	scorer       sentiment.Scorer
	selfUsername string
	cfg          config.AnalyticsConfig
}

func NewSentimentService(
	commentRepo repository.CommentRepo,
	insightRepo repository.InsightRepo,
	scorer sentiment.Scorer,
	selfUsername string,
	cfg config.AnalyticsConfig,
) SentimentService {
	return &sentimentServiceImpl{
		commentRepo:  commentRepo,
		insightRepo:  insightRepo,
		scorer:       scorer,
		selfUsername: selfUsername,
		cfg:          cfg,
	}
}

// classifyMood 情感分到情绪标签的标定阈值
func classifyMood(score, positive, negative float64) string {
	switch {
	case score >= positive:
		return model.MoodPositive
	case score <= negative:
		return model.MoodNegative
	default:
		return model.MoodNeutral
	}
}

// AnalyzePending 每轮只处理固定一批, 避免打分服务过载;
// 垃圾评论直接标记不打分, 单条失败记日志跳过, 不影响同批其他评论
func (s *sentimentServiceImpl) AnalyzePending(ctx context.Context) (*dto.SentimentBatchDTO, error) {
	comments, err := s.commentRepo.ListUnanalyzed(ctx, s.selfUsername, s.cfg.SentimentBatchSize)
	if err != nil {
		return nil, err
	}

	out := &dto.SentimentBatchDTO{}
	for _, comment := range comments {
		text := sentiment.CleanCommentHTML(comment.BodyHTML)

		insight := &model.CommentInsight{
			CommentID:  comment.CommentID,
			AnalyzedAt: time.Now(),
		}

		if sentiment.DetectSpam(text) {
			insight.Mood = model.MoodSpam
			insight.IsSpam = true
			out.Spam++
		} else {
			score, err := s.scorer.Score(ctx, text)
			if err != nil {
				log.WarnContext(ctx, "score comment failed, skip", "comment_id", comment.CommentID, "err", err)
				out.Failed++
				continue
			}
			insight.SentimentScore = score
			insight.Mood = classifyMood(score, s.cfg.SentimentPositive, s.cfg.SentimentNegative)
		}

		if err := s.insightRepo.SaveInsight(ctx, insight); err != nil {
			log.WarnContext(ctx, "save comment insight failed, skip", "comment_id", comment.CommentID, "err", err)
			out.Failed++
			continue
		}
		out.Processed++
	}

	if out.Processed > 0 {
		_ = redis.DeleteKey(ctx, consts.SentimentStatsKey)
	}
	return out, nil
}

func (s *sentimentServiceImpl) GetStats(ctx context.Context) (*dto.SentimentStatsDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.SentimentStatsKey); err == nil && cached != "" {
		var stats dto.SentimentStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	total, err := s.commentRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	analyzed, err := s.insightRepo.CountAnalyzed(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.insightRepo.AvgSentiment(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.insightRepo.CountByMood(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.SentimentStatsDTO{
		TotalComments: total,
		Analyzed:      analyzed,
		AvgScore:      util.Round2(avg),
		MoodCount:     make(map[string]int64, len(counts)),
	}
	for _, c := range counts {
		stats.MoodCount[c.Mood] = c.Count
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = redis.SetWithMidnightExpiration(ctx, consts.SentimentStatsKey, payload)
	}
	return stats, nil
}

func (s *sentimentServiceImpl) ListSpam(ctx context.Context, limit int) ([]*dto.SpamCommentDTO, error) {
	comments, err := s.insightRepo.ListSpamComments(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SpamCommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, &dto.SpamCommentDTO{
			CommentID: c.CommentID,
			ArticleID: c.ArticleID,
			Author:    c.AuthorUsername,
			Excerpt:   excerpt(sentiment.CleanCommentHTML(c.BodyHTML), 140),
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

func (s *sentimentServiceImpl) ListUnansweredQuestions(ctx context.Context) ([]*dto.QuestionDTO, error) {
	comments, err := s.commentRepo.ListUnansweredQuestions(ctx, s.selfUsername)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuestionDTO, 0, len(comments))
	for _, c := range comments {
		text := sentiment.CleanCommentHTML(c.BodyHTML)
		// HTML 属性里也可能带问号, 以清洗后的正文为准
		if !containsQuestion(text) {
			continue
		}
		out = append(out, &dto.QuestionDTO{
			CommentID:    c.CommentID,
			ArticleID:    c.ArticleID,
			ArticleTitle: c.ArticleTitle,
			Author:       c.AuthorUsername,
			Excerpt:      excerpt(text, 140),
			CreatedAt:    c.CreatedAt,
		})
	}
	return out, nil
}

func containsQuestion(text string) bool {
	for _, r := range text {
		if r == '?' || r == '？' {
			return true
		}
	}
	return false
}

func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
