package database

import (
	"context"
	"yatube/internal/core/group"

	"gorm.io/gorm"
)

type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	if err := repo.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (repo *GroupRepositoryDatabase) FindByID(ctx context.Context, id uint) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) List(ctx context.Context) ([]*group.Group, error) {
	var groups []*group.Group
	if err := repo.db.WithContext(ctx).Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
