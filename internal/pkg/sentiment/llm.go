package sentiment

import (
	"Pulse/internal/api/config"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const scorePrompt = `你是一个情感分析器。对用户给出的评论文本输出一个 -1.0 到 1.0 之间的小数, ` +
	`-1.0 表示极端负面, 0 表示中性, 1.0 表示极端正面。只输出数字, 不要输出任何其他内容。`

// LLMScorer 基于大模型的情感打分实现
type LLMScorer struct {
	client llms.Model
	model  string
}

func NewLLMScorer(cfg config.LLMConfig) (*LLMScorer, error) {
	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)
	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return nil, err
	}

	return &LLMScorer{client: llm, model: cfg.TextModel}, nil
}

func (s *LLMScorer) Score(ctx context.Context, text string) (float64, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(scorePrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	resp, err := s.client.GenerateContent(ctx, messages,
		llms.WithModel(s.model),
		llms.WithTemperature(0.0),
	)
	if err != nil {
		log.ErrorContext(ctx, "llm sentiment request failed", "err", err)
		return 0, err
	}
	if len(resp.Choices) == 0 {
		return 0, errors.New("情感分析-AI大模型返回数据为空")
	}

	raw := strings.TrimSpace(resp.Choices[0].Content)
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.ErrorContext(ctx, "parse llm sentiment score failed", "raw", raw, "err", err)
		return 0, err
	}

	// 越界时收口而不是报错
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score, nil
}
