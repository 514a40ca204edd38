package repository

import (
	"slices"

	"Pulse/internal/model"
)

// LatestPerArticle 从一批快照里筛出每篇文章的最新一条
// 采集时间相同时取 id 最大的, 结果按文章 id 升序, 保证可重复
func LatestPerArticle(snaps []*model.ArticleSnapshot) []*model.ArticleSnapshot {
	latest := make(map[uint64]*model.ArticleSnapshot)
	order := make([]uint64, 0)

	for _, s := range snaps {
		cur, ok := latest[s.ArticleID]
		if !ok {
			latest[s.ArticleID] = s
			order = append(order, s.ArticleID)
			continue
		}
		if s.CollectedAt.After(cur.CollectedAt) ||
			(s.CollectedAt.Equal(cur.CollectedAt) && s.ID > cur.ID) {
			latest[s.ArticleID] = s
		}
	}

	slices.Sort(order)
	result := make([]*model.ArticleSnapshot, 0, len(order))
	for _, id := range order {
		result = append(result, latest[id])
	}
	return result
}
