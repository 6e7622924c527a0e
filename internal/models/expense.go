package models

import "time"

// Expense is a single spending record. It belongs to exactly one category
// and one user, and the category must belong to that same user. Deleting
// either parent cascades here.
type Expense struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	CategoryID  uint      `gorm:"index;not null"`
	AmountCent  int64     `gorm:"not null"` // always > 0
	Description string    `gorm:"size:255"`
	OccurredAt  time.Time `gorm:"index;not null"` // defaults to creation time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:CASCADE"`
}

// SetOwner implements repository.Ownable.
func (e *Expense) SetOwner(userID uint) { e.UserID = userID }
