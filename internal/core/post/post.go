package post

import (
	"time"
	"yatube/internal/core/group"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

type Post struct {
	ID        uint         `gorm:"primaryKey"`
	Text      string       `gorm:"type:text;not null"`
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    user.User    `gorm:"foreignKey:AuthorID"`
	GroupID   *uint        `gorm:"index"`
	Group     *group.Group `gorm:"foreignKey:GroupID"`
	Image     string       `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}

// CanEdit reports whether viewer may change or delete p. Only the author may;
// an anonymous viewer (uuid.Nil) never can.
func CanEdit(viewer uuid.UUID, p *Post) bool {
	if p == nil || viewer == uuid.Nil {
		return false
	}
	return p.AuthorID == viewer
}
