package sentiment

import (
	"context"
)

// Scorer 对一段评论文本打情感分, 返回 [-1, 1]
// 正数偏正面, 负数偏负面, 实现方自行保证范围
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}
