package service

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func catalogThemes() []*model.Theme {
	return []*model.Theme{
		{ID: 1, Name: "Expertise Tech", Keywords: []string{"sql", "database", "python", "cloud", "docker", "vps", "astro", "hugo", "vector", "cte"}},
		{ID: 2, Name: "Human & Career", Keywords: []string{"cv", "career", "feedback", "developer", "learning", "growth"}},
		{ID: 3, Name: "Culture & Agile", Keywords: []string{"agile", "scrum", "performance", "theater", "laziness", "management"}},
		{ID: 4, Name: consts.FallbackThemeName, Keywords: []string{}},
	}
}

func TestClassifyText(t *testing.T) {
	themes := catalogThemes()

	t.Run("命中数最高者胜出", func(t *testing.T) {
		best := classifyText(themes, "Postgres CTE deep dive sql database")
		require.NotNil(t, best)
		require.Equal(t, "Expertise Tech", best.theme.Name)
		require.Equal(t, 3, best.matchCount)
		require.InDelta(t, 0.3, best.confidence, 0.001)
		require.ElementsMatch(t, []string{"sql", "database", "cte"}, best.matched)
	})

	t.Run("比绝对命中数而不是命中率", func(t *testing.T) {
		// Human & Career 命中 2/6, Culture & Agile 命中 3/6
		best := classifyText(themes, "agile scrum career management for the lazy developer")
		require.NotNil(t, best)
		require.Equal(t, "Culture & Agile", best.theme.Name)
	})

	t.Run("命中数持平时比置信度", func(t *testing.T) {
		small := []*model.Theme{
			{ID: 1, Name: "wide", Keywords: []string{"go", "rust", "zig", "c"}},
			{ID: 2, Name: "narrow", Keywords: []string{"go", "rust"}},
		}
		best := classifyText(small, "go and rust")
		require.NotNil(t, best)
		// 两边都命中 2 个, narrow 的置信度 1.0 更高
		require.Equal(t, "narrow", best.theme.Name)
	})

	t.Run("双重持平取目录里靠前的主题", func(t *testing.T) {
		small := []*model.Theme{
			{ID: 2, Name: "second", Keywords: []string{"go", "rust"}},
			{ID: 1, Name: "first", Keywords: []string{"go", "rust"}},
		}
		best := classifyText(small, "go and rust")
		require.NotNil(t, best)
		require.Equal(t, "first", best.theme.Name)
	})

	t.Run("大小写不敏感", func(t *testing.T) {
		best := classifyText(themes, "DOCKER on a VPS")
		require.NotNil(t, best)
		require.Equal(t, "Expertise Tech", best.theme.Name)
	})

	t.Run("零命中返回 nil", func(t *testing.T) {
		require.Nil(t, classifyText(themes, "a quiet afternoon"))
	})
}

func TestClassifyArticle(t *testing.T) {
	t.Run("无快照", func(t *testing.T) {
		svc := NewThemeService(&fakeThemeRepo{themes: catalogThemes()}, &fakeSnapshotRepo{})
		_, err := svc.ClassifyArticle(context.Background(), 1)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("主题目录为空", func(t *testing.T) {
		snapRepo := &fakeSnapshotRepo{
			getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
				return &model.ArticleSnapshot{ArticleID: articleID, Title: "anything"}, nil
			},
		}
		svc := NewThemeService(&fakeThemeRepo{}, snapRepo)
		_, err := svc.ClassifyArticle(context.Background(), 1)
		require.ErrorIs(t, err, ErrThemeCatalogEmpty)
	})

	t.Run("标签参与匹配并落库", func(t *testing.T) {
		themeRepo := &fakeThemeRepo{themes: catalogThemes()}
		snapRepo := &fakeSnapshotRepo{
			getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
				return &model.ArticleSnapshot{
					ArticleID: articleID,
					Title:     "My first deploy",
					Tags:      []string{"docker", "cloud"},
				}, nil
			},
		}
		svc := NewThemeService(themeRepo, snapRepo)

		out, err := svc.ClassifyArticle(context.Background(), 42)
		require.NoError(t, err)
		require.Equal(t, "Expertise Tech", out.ThemeName)
		require.NotNil(t, themeRepo.savedAssignment)
		require.Equal(t, uint64(42), themeRepo.savedAssignment.ArticleID)
		require.Equal(t, uint64(1), themeRepo.savedAssignment.ThemeID)
	})

	t.Run("零命中落兜底主题", func(t *testing.T) {
		themeRepo := &fakeThemeRepo{themes: catalogThemes()}
		snapRepo := &fakeSnapshotRepo{
			getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
				return &model.ArticleSnapshot{ArticleID: articleID, Title: "a quiet afternoon"}, nil
			},
		}
		svc := NewThemeService(themeRepo, snapRepo)

		out, err := svc.ClassifyArticle(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, consts.FallbackThemeName, out.ThemeName)
		require.Zero(t, out.Confidence)
	})
}

// 输入不变时重复归类必须产出完全一致的结果
func TestClassifyArticleIdempotent(t *testing.T) {
	themeRepo := &fakeThemeRepo{themes: catalogThemes()}
	snapRepo := &fakeSnapshotRepo{
		getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
			return &model.ArticleSnapshot{
				ArticleID: articleID,
				Title:     "Scaling Postgres",
				Tags:      []string{"sql", "database"},
			}, nil
		},
	}
	svc := NewThemeService(themeRepo, snapRepo)

	first, err := svc.ClassifyArticle(context.Background(), 42)
	require.NoError(t, err)
	firstSaved := *themeRepo.savedAssignment

	second, err := svc.ClassifyArticle(context.Background(), 42)
	require.NoError(t, err)
	secondSaved := *themeRepo.savedAssignment

	require.Equal(t, first, second)
	require.Equal(t, firstSaved.ThemeID, secondSaved.ThemeID)
	require.InDelta(t, firstSaved.ConfidenceScore, secondSaved.ConfidenceScore, 0.0001)
	require.Equal(t, firstSaved.MatchedKeywords, secondSaved.MatchedKeywords)
}

func TestFindSimilar(t *testing.T) {
	themeRepo := &fakeThemeRepo{
		themes: catalogThemes(),
		assignments: []*model.ArticleTheme{
			{ArticleID: 1, ThemeID: 1},
			{ArticleID: 2, ThemeID: 1},
			{ArticleID: 3, ThemeID: 1},
			{ArticleID: 4, ThemeID: 3},
		},
	}
	snapRepo := &fakeSnapshotRepo{
		getLatest: func(articleID uint64) (*model.ArticleSnapshot, error) {
			return &model.ArticleSnapshot{ArticleID: articleID, Title: "source", Tags: []string{"SQL", "docker"}}, nil
		},
		listLatest: func() ([]*model.ArticleSnapshot, error) {
			return []*model.ArticleSnapshot{
				{ArticleID: 1, Title: "source", Tags: []string{"SQL", "docker"}},
				{ArticleID: 2, Title: "two tags", Views: 10, Tags: []string{"sql", "Docker"}},
				{ArticleID: 3, Title: "one tag", Views: 99, Tags: []string{"sql", "go"}},
				{ArticleID: 4, Title: "other theme", Views: 500, Tags: []string{"sql", "docker"}},
			}, nil
		},
	}
	svc := NewThemeService(themeRepo, snapRepo)

	items, err := svc.FindSimilar(context.Background(), 1, 5)
	require.NoError(t, err)
	// 同主题的 2 和 3 入选, 主题不同的 4 不入选; 标签重合多者在前
	require.Len(t, items, 2)
	require.Equal(t, uint64(2), items[0].ArticleID)
	require.ElementsMatch(t, []string{"sql", "docker"}, items[0].SharedTags)
	require.Equal(t, uint64(3), items[1].ArticleID)

	// 还没归类过的文章返回空列表
	items, err = svc.FindSimilar(context.Background(), 9, 5)
	require.NoError(t, err)
	require.Empty(t, items)
}
