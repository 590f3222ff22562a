package follower

import (
	"context"
	"yatube/internal/core/follower"
)

// FollowerRepository stores follow edges.
type FollowerRepository interface {
	// FollowUser inserts the edge; an existing edge is left alone.
	FollowUser(ctx context.Context, follower *follower.Follower) error
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	GetFollowersByUserID(ctx context.Context, userID string) ([]*follower.Follower, error)
	GetFollowingByUserID(ctx context.Context, followerID string) ([]*follower.Follower, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type FollowerDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	FollowerID string `json:"followerId"`
}
