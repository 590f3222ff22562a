package follower

import (
	"time"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follower is one edge of the follow graph: FollowerID watches UserID.
type Follower struct {
	ID         uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_pair"`
	User       user.User `gorm:"foreignKey:UserID"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_pair;index"`
	Follower   user.User `gorm:"foreignKey:FollowerID"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
