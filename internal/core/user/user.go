package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	FirstName string    `gorm:"type:varchar(150);not null;default:''"`
	LastName  string    `gorm:"type:varchar(150);not null;default:''"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(254);not null;default:''"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DisplayName is the full name, falling back to the username.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
