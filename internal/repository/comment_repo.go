package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo interface {
	SaveComment(ctx context.Context, comment *model.Comment) (bool, error)
	ListUnanalyzed(ctx context.Context, excludeUsername string, limit int) ([]*model.Comment, error)
	ListUnansweredQuestions(ctx context.Context, selfUsername string) ([]*model.Comment, error)
	CountAll(ctx context.Context) (int64, error)
}

type commentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepo {
	return &commentRepoImpl{db: db}
}

// SaveComment 按 comment_id 幂等落库, 返回是否新插入
func (r *commentRepoImpl) SaveComment(ctx context.Context, comment *model.Comment) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}},
		DoNothing: true,
	}).Create(comment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListUnanalyzed 反连接筛出还没有分析结果的评论, 自己的评论不参与
func (r *commentRepoImpl) ListUnanalyzed(ctx context.Context, excludeUsername string, limit int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT c.* FROM comments c
			LEFT JOIN comment_insights ci ON ci.comment_id = c.comment_id
			WHERE ci.comment_id IS NULL AND c.author_username <> ?
			ORDER BY c.created_at ASC
			LIMIT ?`, excludeUsername, limit).
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListUnansweredQuestions 带问号且之后没有作者本人跟帖的读者评论
func (r *commentRepoImpl) ListUnansweredQuestions(ctx context.Context, selfUsername string) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT c.* FROM comments c
			WHERE c.author_username <> ?
			AND c.body_html LIKE '%?%'
			AND NOT EXISTS (
				SELECT 1 FROM comments r
				WHERE r.article_id = c.article_id
				AND r.author_username = ?
				AND r.created_at > c.created_at
			)
			ORDER BY c.created_at DESC`, selfUsername, selfUsername).
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepoImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Count(&count).Error
	return count, err
}
