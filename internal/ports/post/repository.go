package post

import (
	"context"
	"io"
	"time"
	"yatube/internal/core/post"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	userPort "yatube/internal/ports/user"
)

// PostRepository stores posts. Delete also removes the post's comments.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	Update(ctx context.Context, post *post.Post) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*post.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

// Upload is an image attached to a create or edit submission.
type Upload struct {
	Filename string
	Content  io.Reader
}

// PostInput is the validated shape of the post form.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *Upload
}

type PostDTO struct {
	ID        uint                `json:"id"`
	Text      string              `json:"text"`
	AuthorID  string              `json:"author_id"`
	Author    *userPort.UserDTO   `json:"author,omitempty"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	Image     string              `json:"image,omitempty"`
	CreatedAt string              `json:"created_at"`
}

func ToDTO(p *post.Post) *PostDTO {
	if p == nil {
		return nil
	}
	dto := &PostDTO{
		ID:        p.ID,
		Text:      p.Text,
		AuthorID:  p.AuthorID.String(),
		Group:     groupPort.ToDTO(p.Group),
		Image:     p.Image,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if p.Author.Username != "" {
		dto.Author = userPort.ToDTO(&p.Author)
	}
	return dto
}

type PostDetailDTO struct {
	Post       *PostDTO                  `json:"post"`
	PostsCount int64                     `json:"posts_count"`
	Comments   []*commentPort.CommentDTO `json:"comments"`
	CanEdit    bool                      `json:"can_edit"`
}
