package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2026, 8, 29, 15, 4, 5, 123, loc)

	midnight := GetMidnight(at)
	require.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, loc), midnight)
	require.Equal(t, loc, midnight.Location())
}

func TestRound2(t *testing.T) {
	require.InDelta(t, 2.34, Round2(2.344), 1e-9)
	require.InDelta(t, 2.35, Round2(2.346), 1e-9)
	require.InDelta(t, -1.5, Round2(-1.499), 1e-9)
}

func TestPercentChange(t *testing.T) {
	require.InDelta(t, 50.0, PercentChange(150, 100), 1e-9)
	require.InDelta(t, -25.0, PercentChange(75, 100), 1e-9)
	// 基数为零返回 0 而不是 Inf
	require.InDelta(t, 0.0, PercentChange(42, 0), 1e-9)
}
