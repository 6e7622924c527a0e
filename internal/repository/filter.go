package repository

import (
	"time"

	"gorm.io/gorm"
)

// ExpenseFilter narrows expense queries. Filters combine with AND and each
// applies only when its pointer is non-nil, so a supplied zero (e.g.
// category_id=0) is a real filter rather than "not supplied".
type ExpenseFilter struct {
	CategoryID    *uint
	MinAmountCent *int64     // inclusive
	MaxAmountCent *int64     // inclusive
	StartDate     *time.Time // inclusive
	EndDate       *time.Time // inclusive
}

// Scope applies the filter to a query.
func (f ExpenseFilter) Scope(tx *gorm.DB) *gorm.DB {
	if f.CategoryID != nil {
		tx = tx.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinAmountCent != nil {
		tx = tx.Where("amount_cent >= ?", *f.MinAmountCent)
	}
	if f.MaxAmountCent != nil {
		tx = tx.Where("amount_cent <= ?", *f.MaxAmountCent)
	}
	if f.StartDate != nil {
		tx = tx.Where("occurred_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		tx = tx.Where("occurred_at <= ?", *f.EndDate)
	}
	return tx
}
