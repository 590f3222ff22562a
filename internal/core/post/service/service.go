package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	postEntity "yatube/internal/core/post"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	mediaPort "yatube/internal/ports/media"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository    postPort.PostRepository
	GroupRepository   groupPort.GroupRepository
	CommentRepository commentPort.CommentRepository
	Media             mediaPort.Storage
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	commentRepo commentPort.CommentRepository,
	media mediaPort.Storage,
) *PostService {
	return &PostService{
		PostRepository:    postRepo,
		GroupRepository:   groupRepo,
		CommentRepository: commentRepo,
		Media:             media,
	}
}

// validate checks the form and returns the trimmed text. Nothing is written
// when it fails.
func (s *PostService) validate(ctx context.Context, in postPort.PostInput) (string, error) {
	text := strings.TrimSpace(in.Text)

	verr := &apperr.ValidationError{}
	if text == "" {
		verr.Add("text", "This field is required.")
	}
	if in.GroupID != nil {
		if _, err := s.GroupRepository.FindByID(ctx, *in.GroupID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return "", err
			}
			verr.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	if len(verr.Fields) > 0 {
		return "", verr
	}
	return text, nil
}

func (s *PostService) saveImage(ctx context.Context, upload *postPort.Upload) (string, error) {
	if upload == nil {
		return "", nil
	}
	return s.Media.Save(ctx, upload.Filename, upload.Content)
}

// discardImage removes an upload whose post was never saved.
func (s *PostService) discardImage(ctx context.Context, image string) {
	if image == "" {
		return
	}
	if err := s.Media.Delete(ctx, image); err != nil {
		config.Logger.Warn("Failed to remove orphaned image", zap.String("path", image), zap.Error(err))
	}
}

// CreatePost stores a new post authored by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid authorID: %w", apperr.ErrUnauthorized)
	}

	text, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	image, err := s.saveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	created, err := s.PostRepository.Create(ctx, &postEntity.Post{
		Text:     text,
		AuthorID: uid,
		GroupID:  in.GroupID,
		Image:    image,
	})
	if err != nil {
		s.discardImage(ctx, image)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	config.Logger.Info("Created post", zap.Uint("postID", created.ID), zap.String("authorID", authorID))
	return s.reload(ctx, created.ID)
}

// EditPost changes text, group and (when a new one is uploaded) the image.
// Viewers other than the author get apperr.ErrForbidden.
func (s *PostService) EditPost(ctx context.Context, viewerID string, postID uint, in postPort.PostInput) (*postPort.PostDTO, error) {
	p, err := s.authorize(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	text, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	image, err := s.saveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	p.Text = text
	p.GroupID = in.GroupID
	if image != "" {
		p.Image = image
	}
	if err := s.PostRepository.Update(ctx, p); err != nil {
		s.discardImage(ctx, image)
		return nil, fmt.Errorf("failed to update post %d: %w", postID, err)
	}

	config.Logger.Info("Edited post", zap.Uint("postID", postID), zap.String("authorID", viewerID))
	return s.reload(ctx, postID)
}

// DeletePost removes the post and its comments. Author only.
func (s *PostService) DeletePost(ctx context.Context, viewerID string, postID uint) error {
	if _, err := s.authorize(ctx, viewerID, postID); err != nil {
		return err
	}
	return s.AdminDeletePost(ctx, postID)
}

// AdminDeletePost removes any post regardless of author.
func (s *PostService) AdminDeletePost(ctx context.Context, postID uint) error {
	if err := s.PostRepository.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", postID, err)
	}
	config.Logger.Info("Deleted post", zap.Uint("postID", postID))
	return nil
}

// GetPost returns a post with its comments and the author's post count.
func (s *PostService) GetPost(ctx context.Context, viewerID string, postID uint) (*postPort.PostDetailDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	count, err := s.PostRepository.CountByAuthor(ctx, p.AuthorID.String())
	if err != nil {
		return nil, err
	}

	comments, err := s.CommentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	commentDTOs := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		commentDTOs = append(commentDTOs, commentPort.ToDTO(c))
	}

	return &postPort.PostDetailDTO{
		Post:       postPort.ToDTO(p),
		PostsCount: count,
		Comments:   commentDTOs,
		CanEdit:    postEntity.CanEdit(uuid.FromStringOrNil(viewerID), p),
	}, nil
}

// CanEdit is the authorization predicate behind the edit and delete actions.
func (s *PostService) CanEdit(ctx context.Context, viewerID string, postID uint) (bool, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("post %d: %w", postID, err)
	}
	return postEntity.CanEdit(uuid.FromStringOrNil(viewerID), p), nil
}

func (s *PostService) authorize(ctx context.Context, viewerID string, postID uint) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}
	if !postEntity.CanEdit(uuid.FromStringOrNil(viewerID), p) {
		config.Logger.Warn("Non-author tried to change post", zap.Uint("postID", postID), zap.String("viewerID", viewerID))
		return nil, fmt.Errorf("post %d: %w", postID, apperr.ErrForbidden)
	}
	return p, nil
}

func (s *PostService) reload(ctx context.Context, postID uint) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}
	return postPort.ToDTO(p), nil
}
