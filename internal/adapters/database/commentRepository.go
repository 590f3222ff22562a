package database

import (
	"context"
	"yatube/internal/core/comment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) ListByPost(ctx context.Context, postID uint) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
