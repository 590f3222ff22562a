package database

import (
	"context"
	"yatube/internal/core/follower"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase is the gorm implementation of FollowerRepository.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

// FollowUser relies on the unique (user_id, follower_id) index: a second
// insert of the same pair is ignored instead of failing.
func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follower) error {
	return repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f).Error
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return repo.db.WithContext(ctx).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Delete(&follower.Follower{}).Error
}

func (repo *FollowerRepositoryDatabase) GetFollowersByUserID(ctx context.Context, userID string) ([]*follower.Follower, error) {
	var followers []*follower.Follower
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowingByUserID(ctx context.Context, followerID string) ([]*follower.Follower, error) {
	var following []*follower.Follower
	if err := repo.db.WithContext(ctx).Where("follower_id = ?", followerID).Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follower.Follower{}).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
