package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestClassifyMood(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "正面", score: 0.35, want: model.MoodPositive},
		{name: "阈值上沿算正面", score: 0.3, want: model.MoodPositive},
		{name: "中性", score: 0.1, want: model.MoodNeutral},
		{name: "阈值下沿算负面", score: -0.2, want: model.MoodNegative},
		{name: "负面", score: -0.6, want: model.MoodNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, classifyMood(tt.score, 0.3, -0.2))
		})
	}
}

func TestAnalyzePending(t *testing.T) {
	cfg := config.AnalyticsConfig{SentimentBatchSize: 50, SentimentPositive: 0.3, SentimentNegative: -0.2}

	t.Run("没有待分析评论时不做任何事", func(t *testing.T) {
		insightRepo := &fakeInsightRepo{}
		svc := NewSentimentService(&fakeCommentRepo{}, insightRepo, &fakeScorer{}, "author", cfg)

		out, err := svc.AnalyzePending(context.Background())
		require.NoError(t, err)
		require.Zero(t, out.Processed)
		require.Zero(t, out.Spam)
		require.Zero(t, out.Failed)
		require.Empty(t, insightRepo.saved)
	})

	t.Run("打分失败只跳过单条", func(t *testing.T) {
		commentRepo := &fakeCommentRepo{
			listUnanalyzed: func(excludeUsername string, limit int) ([]*model.Comment, error) {
				require.Equal(t, "author", excludeUsername)
				require.Equal(t, 50, limit)
				return []*model.Comment{
					{CommentID: "c1", BodyHTML: "<p>Great article, thanks!</p>"},
					{CommentID: "c2", BodyHTML: "<p>Very helpful indeed</p>"},
				}, nil
			},
		}
		insightRepo := &fakeInsightRepo{}
		scorer := &fakeScorer{
			score: func(text string) (float64, error) {
				return 0, errors.New("model timeout")
			},
		}
		svc := NewSentimentService(commentRepo, insightRepo, scorer, "author", cfg)

		out, err := svc.AnalyzePending(context.Background())
		require.NoError(t, err)
		require.Zero(t, out.Processed)
		require.Equal(t, 2, out.Failed)
		require.Empty(t, insightRepo.saved)
	})

	t.Run("垃圾评论不送打分", func(t *testing.T) {
		commentRepo := &fakeCommentRepo{
			listUnanalyzed: func(excludeUsername string, limit int) ([]*model.Comment, error) {
				return []*model.Comment{
					{CommentID: "c1", BodyHTML: "<p>I was swindled, contact the investigator on whatsapp</p>"},
				}, nil
			},
		}
		insightRepo := &fakeInsightRepo{}
		scorerCalled := false
		scorer := &fakeScorer{
			score: func(text string) (float64, error) {
				scorerCalled = true
				return 0, nil
			},
		}
		svc := NewSentimentService(commentRepo, insightRepo, scorer, "author", cfg)

		out, err := svc.AnalyzePending(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, out.Spam)
		require.Equal(t, 1, out.Processed)
		require.False(t, scorerCalled)
		require.Len(t, insightRepo.saved, 1)
		require.True(t, insightRepo.saved[0].IsSpam)
		require.Equal(t, model.MoodSpam, insightRepo.saved[0].Mood)
	})

	t.Run("第二轮没有新评论时处理数为零", func(t *testing.T) {
		insightRepo := &fakeInsightRepo{}
		// 反连接语义: 已有分析结果的评论不再出现在待办里
		commentRepo := &fakeCommentRepo{
			listUnanalyzed: func(excludeUsername string, limit int) ([]*model.Comment, error) {
				analyzed := make(map[string]bool, len(insightRepo.saved))
				for _, insight := range insightRepo.saved {
					analyzed[insight.CommentID] = true
				}
				pending := make([]*model.Comment, 0)
				for _, c := range []*model.Comment{
					{CommentID: "c1", BodyHTML: "<p>Great post!</p>"},
					{CommentID: "c2", BodyHTML: "<p>Loved the examples</p>"},
				} {
					if !analyzed[c.CommentID] {
						pending = append(pending, c)
					}
				}
				return pending, nil
			},
		}
		scorer := &fakeScorer{
			score: func(text string) (float64, error) { return 0.5, nil },
		}
		svc := NewSentimentService(commentRepo, insightRepo, scorer, "author", cfg)

		first, err := svc.AnalyzePending(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, first.Processed)
		require.Len(t, insightRepo.saved, 2)

		second, err := svc.AnalyzePending(context.Background())
		require.NoError(t, err)
		require.Zero(t, second.Processed)
		require.Zero(t, second.Spam)
		require.Zero(t, second.Failed)
		require.Len(t, insightRepo.saved, 2)
	})
}

func TestContainsQuestion(t *testing.T) {
	require.True(t, containsQuestion("how does this work?"))
	require.True(t, containsQuestion("这是为什么？"))
	require.False(t, containsQuestion("great article"))
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short", excerpt("short", 140))

	long := make([]rune, 0, 200)
	for i := 0; i < 200; i++ {
		long = append(long, '字')
	}
	out := excerpt(string(long), 140)
	require.Equal(t, 141, len([]rune(out)))
}
