package commentapp

import (
	"context"
	"fmt"
	"strings"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	commentEntity "yatube/internal/core/comment"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

// AddComment appends a comment to an existing post.
func (s *CommentService) AddComment(ctx context.Context, authorID string, postID uint, text string) (*commentPort.CommentDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid authorID: %w", apperr.ErrUnauthorized)
	}
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.NewValidationError("text", "This field is required.")
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID:   postID,
		AuthorID: uid,
		Text:     text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	config.Logger.Info("Added comment", zap.Uint("commentID", c.ID), zap.Uint("postID", postID), zap.String("authorID", authorID))
	return commentPort.ToDTO(c), nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.ToDTO(c))
	}
	return dtos, nil
}
