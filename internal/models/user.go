package models

import "time"

// DefaultStartingBalanceCent is credited to every new account (1000.00).
const DefaultStartingBalanceCent int64 = 100_000

// User represents an application user. Amounts are stored in cents to
// avoid float rounding, e.g. 1000.00 = 100000.
type User struct {
	ID                  uint   `gorm:"primaryKey"`
	Username            string `gorm:"size:32;uniqueIndex;not null"`
	Email               string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash        string `gorm:"size:128;not null"`
	IsActive            bool   `gorm:"not null;default:true"`
	StartingBalanceCent int64  `gorm:"not null;default:100000"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
