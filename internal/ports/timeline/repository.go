package timeline

import (
	"context"
	"yatube/internal/core/post"
	"yatube/internal/core/timeline"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// TimelineRepository lists posts newest first (created_at DESC, id DESC)
// with author and group loaded, and reports the total matching count.
type TimelineRepository interface {
	ListPosts(ctx context.Context, filter timeline.Filter, offset, limit int) ([]*post.Post, int64, error)
}

type PageDTO struct {
	timeline.Meta
	Items []*postPort.PostDTO `json:"items"`
}

type GroupPageDTO struct {
	Group *groupPort.GroupDTO `json:"group"`
	Page  *PageDTO            `json:"page"`
}

type ProfilePageDTO struct {
	Author     *userPort.UserDTO `json:"author"`
	PostsCount int64             `json:"posts_count"`
	Following  bool              `json:"following"`
	Page       *PageDTO          `json:"page"`
}
