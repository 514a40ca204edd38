package repository

import (
	"Pulse/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLatestPerArticle(t *testing.T) {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	snaps := []*model.ArticleSnapshot{
		{ID: 1, ArticleID: 2, CollectedAt: base, Views: 10},
		{ID: 2, ArticleID: 2, CollectedAt: base.Add(time.Hour), Views: 12},
		{ID: 3, ArticleID: 1, CollectedAt: base, Views: 5},
		// 同一采集时刻, id 更大的视为更新
		{ID: 5, ArticleID: 1, CollectedAt: base, Views: 6},
		{ID: 4, ArticleID: 1, CollectedAt: base, Views: 7},
	}

	latest := LatestPerArticle(snaps)
	require.Len(t, latest, 2)

	// 结果按文章 id 升序
	require.Equal(t, uint64(1), latest[0].ArticleID)
	require.Equal(t, uint64(5), latest[0].ID)
	require.Equal(t, uint64(2), latest[1].ArticleID)
	require.Equal(t, uint64(2), latest[1].ID)
}

func TestLatestPerArticleEmpty(t *testing.T) {
	require.Empty(t, LatestPerArticle(nil))
}
