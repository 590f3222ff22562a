package timelineapp

import (
	"context"
	"fmt"
	"yatube/internal/core/timeline"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	timelinePort "yatube/internal/ports/timeline"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
)

// FollowGraph is the part of the follower service the feed needs.
type FollowGraph interface {
	FollowedAuthors(ctx context.Context, followerID string) ([]uuid.UUID, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

// TimelineService builds every paginated post listing: the public index,
// group and profile pages, and a viewer's follow feed. They differ only in
// the filter.
type TimelineService struct {
	TimelineRepository timelinePort.TimelineRepository
	GroupRepository    groupPort.GroupRepository
	UserRepository     userPort.UserRepository
	Follows            FollowGraph
	PageSize           int
}

func NewTimelineService(
	timelineRepo timelinePort.TimelineRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	follows FollowGraph,
) *TimelineService {
	return &TimelineService{
		TimelineRepository: timelineRepo,
		GroupRepository:    groupRepo,
		UserRepository:     userRepo,
		Follows:            follows,
		PageSize:           timeline.PageSize,
	}
}

func (s *TimelineService) page(ctx context.Context, f timeline.Filter, number int) (*timelinePort.PageDTO, error) {
	if number < 1 {
		number = 1
	}
	posts, total, err := s.TimelineRepository.ListPosts(ctx, f, timeline.Offset(number, s.PageSize), s.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, postPort.ToDTO(p))
	}
	return &timelinePort.PageDTO{
		Meta:  timeline.NewMeta(number, s.PageSize, total),
		Items: items,
	}, nil
}

// Index is the public listing of all posts.
func (s *TimelineService) Index(ctx context.Context, number int) (*timelinePort.PageDTO, error) {
	return s.page(ctx, timeline.Filter{}, number)
}

// GroupPosts lists the posts of the group with the given slug.
func (s *TimelineService) GroupPosts(ctx context.Context, slug string, number int) (*timelinePort.GroupPageDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}

	page, err := s.page(ctx, timeline.Filter{GroupID: &g.ID}, number)
	if err != nil {
		return nil, err
	}
	return &timelinePort.GroupPageDTO{Group: groupPort.ToDTO(g), Page: page}, nil
}

// ProfilePosts lists an author's posts. viewerID may be empty for anonymous
// visitors, in which case Following is false.
func (s *TimelineService) ProfilePosts(ctx context.Context, username, viewerID string, number int) (*timelinePort.ProfilePageDTO, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}

	page, err := s.page(ctx, timeline.Filter{AuthorIDs: []uuid.UUID{author.ID}}, number)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" && viewerID != author.ID.String() {
		following, err = s.Follows.IsFollowing(ctx, viewerID, author.ID.String())
		if err != nil {
			return nil, err
		}
	}

	return &timelinePort.ProfilePageDTO{
		Author:     userPort.ToDTO(author),
		PostsCount: page.TotalCount,
		Following:  following,
		Page:       page,
	}, nil
}

// Feed lists posts by everyone viewerID follows. Following nobody gives an
// empty first page without touching the post table.
func (s *TimelineService) Feed(ctx context.Context, viewerID string, number int) (*timelinePort.PageDTO, error) {
	authors, err := s.Follows.FollowedAuthors(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("followed authors of %s: %w", viewerID, err)
	}
	if len(authors) == 0 {
		if number < 1 {
			number = 1
		}
		return &timelinePort.PageDTO{
			Meta:  timeline.NewMeta(number, s.PageSize, 0),
			Items: []*postPort.PostDTO{},
		}, nil
	}
	return s.page(ctx, timeline.Filter{AuthorIDs: authors}, number)
}
