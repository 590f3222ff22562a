package followerapp

import (
	"context"
	"fmt"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	followerEntity "yatube/internal/core/follower"
	followerPort "yatube/internal/ports/follower"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FollowerService maintains the follow graph. Every call names the acting
// user explicitly.
type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
}

func NewFollowerService(repo followerPort.FollowerRepository) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
	}
}

func parsePair(followerID, followeeID string) (uuid.UUID, uuid.UUID, error) {
	fid, err := uuid.FromString(followerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid followerID %q: %w", followerID, apperr.ErrValidation)
	}
	tid, err := uuid.FromString(followeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid followeeID %q: %w", followeeID, apperr.ErrValidation)
	}
	return fid, tid, nil
}

// FollowUser adds the edge follower -> followee. Following an author twice is
// a no-op; following yourself is apperr.ErrInvalidOperation.
func (s *FollowerService) FollowUser(ctx context.Context, followerID, followeeID string) error {
	fid, tid, err := parsePair(followerID, followeeID)
	if err != nil {
		return err
	}
	if fid == tid {
		config.Logger.Warn("Cannot follow yourself", zap.String("userID", followerID))
		return fmt.Errorf("cannot follow yourself: %w", apperr.ErrInvalidOperation)
	}

	f := &followerEntity.Follower{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     tid,
		FollowerID: fid,
	}
	if err := s.FollowerRepository.FollowUser(ctx, f); err != nil {
		return fmt.Errorf("follow %s -> %s: %w", followerID, followeeID, err)
	}
	return nil
}

// UnfollowUser removes the edge if present.
func (s *FollowerService) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	if _, _, err := parsePair(followerID, followeeID); err != nil {
		return err
	}
	return s.FollowerRepository.UnfollowUser(ctx, followerID, followeeID)
}

func (s *FollowerService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == "" || followeeID == "" {
		return false, nil
	}
	return s.FollowerRepository.IsFollowing(ctx, followerID, followeeID)
}

// FollowedAuthors returns the distinct IDs of everyone followerID follows.
func (s *FollowerService) FollowedAuthors(ctx context.Context, followerID string) ([]uuid.UUID, error) {
	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, followerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(following))
	authors := make([]uuid.UUID, 0, len(following))
	for _, f := range following {
		if _, ok := seen[f.UserID]; ok {
			continue
		}
		seen[f.UserID] = struct{}{}
		authors = append(authors, f.UserID)
	}
	return authors, nil
}

func (s *FollowerService) GetFollowersByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	followers, err := s.FollowerRepository.GetFollowersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(followers), nil
}

func (s *FollowerService) GetFollowingByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(following), nil
}

func toDTOs(edges []*followerEntity.Follower) []*followerPort.FollowerDTO {
	dtos := make([]*followerPort.FollowerDTO, 0, len(edges))
	for _, f := range edges {
		dtos = append(dtos, &followerPort.FollowerDTO{
			ID:         f.ID.String(),
			UserID:     f.UserID.String(),
			FollowerID: f.FollowerID.String(),
		})
	}
	return dtos
}
