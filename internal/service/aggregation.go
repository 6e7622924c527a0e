package service

import (
	"context"

	"home-budget/internal/models"
	"home-budget/internal/repository"

	"gorm.io/gorm"
)

// Balance is a user's financial position, in cents.
type Balance struct {
	StartingBalanceCent int64
	TotalSpentCent      int64
	CurrentBalanceCent  int64
}

// AggregationService derives balance and spending totals from expenses.
type AggregationService struct {
	db *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{db: db}
}

// Balance returns starting balance, total spent and what remains. A user
// with no expenses has a total of zero, not an error.
func (s *AggregationService) Balance(ctx context.Context, user *models.User) (Balance, error) {
	total, err := s.sumExpenses(ctx, user.ID, repository.ExpenseFilter{})
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		StartingBalanceCent: user.StartingBalanceCent,
		TotalSpentCent:      total,
		CurrentBalanceCent:  user.StartingBalanceCent - total,
	}, nil
}

// TotalSpending sums the user's expenses under the given filter; zero when
// nothing matches.
func (s *AggregationService) TotalSpending(ctx context.Context, user *models.User, filter repository.ExpenseFilter) (int64, error) {
	return s.sumExpenses(ctx, user.ID, filter)
}

func (s *AggregationService) sumExpenses(ctx context.Context, userID uint, filter repository.ExpenseFilter) (int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("user_id = ?", userID)
	tx = filter.Scope(tx)

	var total int64
	err := tx.Select("COALESCE(SUM(amount_cent), 0)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
