package models

import "time"

// Category groups a user's expenses. Names are not unique, even within a
// single user. Deleting a user takes their categories with them.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:64;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// SetOwner implements repository.Ownable.
func (c *Category) SetOwner(userID uint) { c.UserID = userID }
