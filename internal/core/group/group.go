package group

import "time"

// Group is a topic category posts may optionally belong to.
type Group struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
