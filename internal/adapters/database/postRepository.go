package database

import (
	"context"
	"yatube/internal/core/comment"
	"yatube/internal/core/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase is the gorm implementation of PostRepository.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Update writes the author-editable columns only.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	return repo.db.WithContext(ctx).Model(&post.Post{ID: p.ID}).
		Updates(map[string]any{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
}

// Delete removes the post and its comments in one transaction.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&post.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return notFound(err)
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
