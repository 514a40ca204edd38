package util

import (
	"math"
	"time"
)

// GetMidnight 返回 t 所在自然日的零点
func GetMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentChange 环比变化率, 基数为 0 时返回 0 而不是 Inf
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return Round2((current - previous) / previous * 100)
}
