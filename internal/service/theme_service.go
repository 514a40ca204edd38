package service

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// 默认主题目录, 只在主题表为空位时播种, 手工调整过的关键词不会被覆盖
var defaultThemes = []*model.Theme{
	{Name: "Expertise Tech", Keywords: []string{"sql", "database", "python", "cloud", "docker", "vps", "astro", "hugo", "vector", "cte"}},
	{Name: "Human & Career", Keywords: []string{"cv", "career", "feedback", "developer", "learning", "growth"}},
	{Name: "Culture & Agile", Keywords: []string{"agile", "scrum", "performance", "theater", "laziness", "management"}},
	{Name: consts.FallbackThemeName, Keywords: []string{}},
}

type ThemeService interface {
	// SeedDefaultThemes 初始化主题目录, 幂等
	SeedDefaultThemes(ctx context.Context) error
	// ClassifyArticle 依据最新快照的标题和标签归类单篇文章
	ClassifyArticle(ctx context.Context, articleID uint64) (*dto.ClassifyResultDTO, error)
	// ClassifyAll 批量归类, 单篇失败记日志跳过
	ClassifyAll(ctx context.Context) (*dto.ClassifyAllDTO, error)
	// GetThemeReport 按主题聚合的表现报表
	GetThemeReport(ctx context.Context) (*dto.ThemeReportDTO, error)
	// FindSimilar 同主题下按标签重合度排序的相近文章
	FindSimilar(ctx context.Context, articleID uint64, limit int) ([]*dto.SimilarArticleDTO, error)
}

type themeServiceImpl struct {
	themeRepo    repository.ThemeRepo
	snapshotRepo repository.SnapshotRepo
}

func NewThemeService(themeRepo repository.ThemeRepo, snapshotRepo repository.SnapshotRepo) ThemeService {
	return &themeServiceImpl{
		themeRepo:    themeRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (s *themeServiceImpl) SeedDefaultThemes(ctx context.Context) error {
	return s.themeRepo.SeedThemes(ctx, defaultThemes)
}

// themeMatch 单主题的匹配结果
type themeMatch struct {
	theme      *model.Theme
	matchCount int
	confidence float64
	matched    []string
}

// classifyText 主题匹配核心规则:
// 1) 在小写化的 标题+标签 文本里做关键词子串计数
// 2) 取绝对命中数最高的主题(不是命中率)
// 3) 命中数持平比置信度, 再持平取目录里靠前的主题(id 最小)
// 4) 全部为零命中时返回 nil, 由调用方落兜底主题
func classifyText(themes []*model.Theme, text string) *themeMatch {
	lower := strings.ToLower(text)

	var best *themeMatch
	for _, theme := range themes {
		if len(theme.Keywords) == 0 {
			continue
		}
		m := &themeMatch{theme: theme}
		for _, kw := range theme.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				m.matchCount++
				m.matched = append(m.matched, kw)
			}
		}
		m.confidence = float64(m.matchCount) / float64(len(theme.Keywords))

		if m.matchCount == 0 {
			continue
		}
		if best == nil ||
			m.matchCount > best.matchCount ||
			(m.matchCount == best.matchCount && m.confidence > best.confidence) ||
			(m.matchCount == best.matchCount && m.confidence == best.confidence && m.theme.ID < best.theme.ID) {
			best = m
		}
	}
	return best
}

func (s *themeServiceImpl) ClassifyArticle(ctx context.Context, articleID uint64) (*dto.ClassifyResultDTO, error) {
	snap, err := s.snapshotRepo.GetLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrSnapshotNotFound
	}
	return s.classifySnapshot(ctx, snap)
}

func (s *themeServiceImpl) classifySnapshot(ctx context.Context, snap *model.ArticleSnapshot) (*dto.ClassifyResultDTO, error) {
	themes, err := s.themeRepo.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, ErrThemeCatalogEmpty
	}

	text := snap.Title + " " + strings.Join(snap.Tags, " ")
	best := classifyText(themes, text)

	var (
		winner     *model.Theme
		confidence float64
		matched    []string
	)
	if best != nil {
		winner = best.theme
		confidence = best.confidence
		matched = best.matched
	} else {
		winner, err = s.themeRepo.GetByName(ctx, consts.FallbackThemeName)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, ErrThemeNotFound
		}
		matched = []string{}
	}

	assignment := &model.ArticleTheme{
		ArticleID:       snap.ArticleID,
		ThemeID:         winner.ID,
		ConfidenceScore: confidence,
		MatchedKeywords: matched,
		ClassifiedAt:    time.Now(),
	}
	if err := s.themeRepo.SaveAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	return &dto.ClassifyResultDTO{
		ArticleID:       snap.ArticleID,
		ThemeID:         winner.ID,
		ThemeName:       winner.Name,
		Confidence:      confidence,
		MatchedKeywords: matched,
	}, nil
}

func (s *themeServiceImpl) ClassifyAll(ctx context.Context) (*dto.ClassifyAllDTO, error) {
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ClassifyAllDTO{}
	for _, snap := range snapshots {
		if snap.IsDeleted {
			out.Skipped++
			continue
		}
		if _, err := s.classifySnapshot(ctx, snap); err != nil {
			log.WarnContext(ctx, "classify article failed, skip", "article_id", snap.ArticleID, "err", err)
			out.Skipped++
			continue
		}
		out.Classified++
	}

	_ = redis.DeleteKey(ctx, consts.ThemeReportKey)
	return out, nil
}

func (s *themeServiceImpl) GetThemeReport(ctx context.Context) (*dto.ThemeReportDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.ThemeReportKey); err == nil && cached != "" {
		var report dto.ThemeReportDTO
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	themes, err := s.themeRepo.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.themeRepo.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	snapByArticle := make(map[uint64]*model.ArticleSnapshot, len(snapshots))
	for _, snap := range snapshots {
		snapByArticle[snap.ArticleID] = snap
	}

	items := make(map[uint64]*dto.ThemeReportItemDTO, len(themes))
	order := make([]uint64, 0, len(themes))
	for _, theme := range themes {
		items[theme.ID] = &dto.ThemeReportItemDTO{ThemeID: theme.ID, ThemeName: theme.Name}
		order = append(order, theme.ID)
	}

	for _, assignment := range assignments {
		item, ok := items[assignment.ThemeID]
		if !ok {
			continue
		}
		snap, ok := snapByArticle[assignment.ArticleID]
		if !ok || snap.IsDeleted {
			continue
		}
		item.ArticleCount++
		item.TotalViews += snap.Views
		item.TotalReactions += snap.Reactions
	}

	report := &dto.ThemeReportDTO{GeneratedAt: time.Now(), Items: make([]*dto.ThemeReportItemDTO, 0, len(order))}
	for _, themeID := range order {
		item := items[themeID]
		if item.ArticleCount > 0 {
			item.AvgViews = util.Round2(float64(item.TotalViews) / float64(item.ArticleCount))
		}
		if item.TotalViews > 0 {
			item.EngagementRate = util.Round2(float64(item.TotalReactions) / float64(item.TotalViews) * 100)
		}
		report.Items = append(report.Items, item)
	}

	if payload, err := json.Marshal(report); err == nil {
		_ = redis.SetWithMidnightExpiration(ctx, consts.ThemeReportKey, payload)
	}
	return report, nil
}

// FindSimilar 以同主题为底, 标签重合数排序, 重合数相同看浏览量
func (s *themeServiceImpl) FindSimilar(ctx context.Context, articleID uint64, limit int) ([]*dto.SimilarArticleDTO, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}

	source, err := s.snapshotRepo.GetLatest(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrSnapshotNotFound
	}

	assignment, err := s.themeRepo.GetAssignment(ctx, articleID)
	if err != nil {
		return nil, err
	}
	// 还没归类过就没有比对基准
	if assignment == nil {
		return []*dto.SimilarArticleDTO{}, nil
	}

	assignments, err := s.themeRepo.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.snapshotRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}

	snapByArticle := make(map[uint64]*model.ArticleSnapshot, len(snapshots))
	for _, snap := range snapshots {
		snapByArticle[snap.ArticleID] = snap
	}

	sourceTags := make(map[string]struct{}, len(source.Tags))
	for _, tag := range source.Tags {
		sourceTags[strings.ToLower(tag)] = struct{}{}
	}

	items := make([]*dto.SimilarArticleDTO, 0)
	for _, other := range assignments {
		if other.ArticleID == articleID || other.ThemeID != assignment.ThemeID {
			continue
		}
		snap, ok := snapByArticle[other.ArticleID]
		if !ok || snap.IsDeleted {
			continue
		}
		shared := make([]string, 0)
		for _, tag := range snap.Tags {
			if _, ok := sourceTags[strings.ToLower(tag)]; ok {
				shared = append(shared, strings.ToLower(tag))
			}
		}
		items = append(items, &dto.SimilarArticleDTO{
			ArticleID:  other.ArticleID,
			Title:      snap.Title,
			ThemeID:    other.ThemeID,
			SharedTags: shared,
			Views:      snap.Views,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if len(items[i].SharedTags) != len(items[j].SharedTags) {
			return len(items[i].SharedTags) > len(items[j].SharedTags)
		}
		if items[i].Views != items[j].Views {
			return items[i].Views > items[j].Views
		}
		return items[i].ArticleID < items[j].ArticleID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
