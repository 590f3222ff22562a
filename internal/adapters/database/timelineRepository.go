package database

import (
	"context"
	"yatube/internal/core/post"
	"yatube/internal/core/timeline"

	"gorm.io/gorm"
)

type TimelineRepositoryDatabase struct {
	db *gorm.DB
}

func NewTimelineRepositoryDatabase(db *gorm.DB) *TimelineRepositoryDatabase {
	return &TimelineRepositoryDatabase{db: db}
}

func filterScope(f timeline.Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.AuthorIDs != nil {
			tx = tx.Where("author_id IN ?", f.AuthorIDs)
		}
		if f.GroupID != nil {
			tx = tx.Where("group_id = ?", *f.GroupID)
		}
		return tx
	}
}

// ListPosts returns one window of the filtered listing, newest first, and the
// total number of matching posts. created_at ties resolve by id so equal
// timestamps still page deterministically.
func (repo *TimelineRepositoryDatabase) ListPosts(ctx context.Context, f timeline.Filter, offset, limit int) ([]*post.Post, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Scopes(filterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*post.Post, 0, limit)
	if offset < 0 || int64(offset) >= total {
		return posts, total, nil
	}

	if err := repo.db.WithContext(ctx).
		Scopes(filterScope(f)).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
