package groupapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	groupEntity "yatube/internal/core/group"
	groupPort "yatube/internal/ports/group"

	"go.uber.org/zap"
)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

// CreateGroup adds a category. A blank slug is derived from the title.
func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = groupEntity.Slugify(title)
	}

	verr := &apperr.ValidationError{}
	if title == "" {
		verr.Add("title", "This field is required.")
	}
	if !groupEntity.ValidSlug(slug) {
		verr.Add("slug", "Enter a valid slug of letters, numbers, underscores or hyphens.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if _, err := s.GroupRepository.FindBySlug(ctx, slug); err == nil {
		return nil, apperr.NewValidationError("slug", "Group with this slug already exists.")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	config.Logger.Info("Created group", zap.Uint("groupID", g.ID), zap.String("slug", g.Slug))
	return groupPort.ToDTO(g), nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}
	return groupPort.ToDTO(g), nil
}

func (s *GroupService) GetByID(ctx context.Context, id uint) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("group %d: %w", id, err)
	}
	return groupPort.ToDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.ToDTO(g))
	}
	return dtos, nil
}
