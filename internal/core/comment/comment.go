package comment

import (
	"time"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"not null;index"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null"`
	Author    user.User `gorm:"foreignKey:AuthorID"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
