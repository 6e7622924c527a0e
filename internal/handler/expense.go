package handler

import (
	"net/http"
	"time"

	"home-budget/internal/models"
	"home-budget/internal/repository"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves owner-scoped expense CRUD with the optional
// conjunctive list filters.
type ExpenseHandler struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
}

func NewExpenseHandler(expenses *repository.ExpenseRepository, categories *repository.CategoryRepository) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, categories: categories}
}

type createExpenseReq struct {
	Amount      string `json:"amount" binding:"required"` // decimal string, e.g. "150.00"
	Description string `json:"description" binding:"max=255"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Date        string `json:"date"` // defaults to now
}

type updateExpenseReq struct {
	Amount      *string `json:"amount"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	CategoryID  *uint   `json:"category_id"`
	Date        *string `json:"date"`
}

func expenseResp(e *models.Expense) gin.H {
	return gin.H{
		"id":          e.ID,
		"amount":      util.FormatCent(e.AmountCent),
		"amount_cent": e.AmountCent,
		"description": e.Description,
		"category_id": e.CategoryID,
		"date":        e.OccurredAt,
		"created_at":  e.CreatedAt,
	}
}

// ownsCategory verifies the category exists and belongs to the caller. A
// foreign category is reported as missing, like everywhere else.
func (h *ExpenseHandler) ownsCategory(c *gin.Context, categoryID, userID uint) bool {
	cat, err := h.categories.Get(c.Request.Context(), categoryID, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		return false
	}
	if cat == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Category not found")
		return false
	}
	return true
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	amountCent, err := util.ParseAmountCent(req.Amount)
	if err != nil || amountCent <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be a positive decimal")
		return
	}

	occurredAt := time.Now()
	if req.Date != "" {
		t, err := parseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD or RFC3339")
			return
		}
		occurredAt = t
	}

	if !h.ownsCategory(c, req.CategoryID, user.ID) {
		return
	}

	expense := models.Expense{
		CategoryID:  req.CategoryID,
		AmountCent:  amountCent,
		Description: req.Description,
		OccurredAt:  occurredAt,
	}
	if err := h.expenses.Create(c.Request.Context(), &expense, user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create expense")
		return
	}

	util.Created(c, util.Response{"expense": expenseResp(&expense)})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	expenses, err := h.expenses.List(c.Request.Context(), user.ID, filter.Scope)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list expenses")
		return
	}

	items := make([]gin.H, 0, len(expenses))
	for i := range expenses {
		items = append(items, expenseResp(&expenses[i]))
	}
	util.Success(c, util.Response{"expenses": items})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expense")
		return
	}
	if expense == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Expense not found")
		return
	}
	util.Success(c, util.Response{"expense": expenseResp(expense)})
}

// Update applies a partial patch; fields absent from the body stay as they
// are.
func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	patch := map[string]interface{}{}
	if req.Amount != nil {
		amountCent, err := util.ParseAmountCent(*req.Amount)
		if err != nil || amountCent <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be a positive decimal")
			return
		}
		patch["amount_cent"] = amountCent
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.CategoryID != nil {
		if !h.ownsCategory(c, *req.CategoryID, user.ID) {
			return
		}
		patch["category_id"] = *req.CategoryID
	}
	if req.Date != nil {
		t, err := parseDate(*req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, expected YYYY-MM-DD or RFC3339")
			return
		}
		patch["occurred_at"] = t
	}

	expense, err := h.expenses.Update(c.Request.Context(), id, user.ID, patch)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update expense")
		return
	}
	if expense == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Expense not found")
		return
	}
	util.Success(c, util.Response{"expense": expenseResp(expense)})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.expenses.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete expense")
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Expense not found")
		return
	}
	util.NoContent(c)
}
