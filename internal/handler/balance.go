package handler

import (
	"net/http"

	"home-budget/internal/service"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// BalanceHandler serves the derived balance and spending figures.
type BalanceHandler struct {
	agg *service.AggregationService
}

func NewBalanceHandler(agg *service.AggregationService) *BalanceHandler {
	return &BalanceHandler{agg: agg}
}

// Balance returns starting balance, total spent and the remainder.
func (h *BalanceHandler) Balance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	balance, err := h.agg.Balance(c.Request.Context(), user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute balance")
		return
	}

	util.Success(c, util.Response{
		"starting_balance": util.FormatCent(balance.StartingBalanceCent),
		"total_spent":      util.FormatCent(balance.TotalSpentCent),
		"current_balance":  util.FormatCent(balance.CurrentBalanceCent),
	})
}

// TotalSpending sums the caller's expenses under the optional filters.
func (h *BalanceHandler) TotalSpending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	total, err := h.agg.TotalSpending(c.Request.Context(), user, filter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute total spending")
		return
	}

	util.Success(c, util.Response{
		"total_spending": util.FormatCent(total),
	})
}
