package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThemeRepo interface {
	SeedThemes(ctx context.Context, themes []*model.Theme) error
	ListThemes(ctx context.Context) ([]*model.Theme, error)
	GetByName(ctx context.Context, name string) (*model.Theme, error)
	SaveAssignment(ctx context.Context, assignment *model.ArticleTheme) error
	GetAssignment(ctx context.Context, articleID uint64) (*model.ArticleTheme, error)
	ListAssignments(ctx context.Context) ([]*model.ArticleTheme, error)
}

type themeRepoImpl struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepo {
	return &themeRepoImpl{db: db}
}

// SeedThemes 初始化主题目录, 已存在的主题不动, 保留手工改过的关键词
func (r *themeRepoImpl) SeedThemes(ctx context.Context, themes []*model.Theme) error {
	if len(themes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(themes).Error
}

// ListThemes 按 id 升序, 目录顺序即优先级
func (r *themeRepoImpl) ListThemes(ctx context.Context) ([]*model.Theme, error) {
	themes := make([]*model.Theme, 0)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepoImpl) GetByName(ctx context.Context, name string) (*model.Theme, error) {
	var theme model.Theme
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}

// SaveAssignment 每篇文章一条归类, 重新分类直接覆盖旧结果
func (r *themeRepoImpl) SaveAssignment(ctx context.Context, assignment *model.ArticleTheme) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"theme_id",
			"confidence_score",
			"matched_keywords",
			"classified_at",
		}),
	}).Create(assignment).Error
}

func (r *themeRepoImpl) GetAssignment(ctx context.Context, articleID uint64) (*model.ArticleTheme, error) {
	var assignment model.ArticleTheme
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *themeRepoImpl) ListAssignments(ctx context.Context) ([]*model.ArticleTheme, error) {
	assignments := make([]*model.ArticleTheme, 0)
	err := r.db.WithContext(ctx).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
