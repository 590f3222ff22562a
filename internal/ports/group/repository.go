package group

import (
	"context"
	"yatube/internal/core/group"
)

type GroupRepository interface {
	Create(ctx context.Context, g *group.Group) (*group.Group, error)
	FindByID(ctx context.Context, id uint) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
}

type GroupDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func ToDTO(g *group.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
