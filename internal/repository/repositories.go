package repository

import (
	"home-budget/internal/models"

	"gorm.io/gorm"
)

// The owner-scoped repositories used by the handlers.
type (
	CategoryRepository = Owned[models.Category, *models.Category]
	ExpenseRepository  = Owned[models.Expense, *models.Expense]
)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return NewOwned[models.Category, *models.Category](db)
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return NewOwned[models.Expense, *models.Expense](db)
}
