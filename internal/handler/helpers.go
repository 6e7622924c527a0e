package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"home-budget/internal/models"
	"home-budget/internal/repository"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser fetches the user placed in the context by the auth
// middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Unauthorized(c, "not authenticated")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Unauthorized(c, "not authenticated")
		return nil, false
	}
	return user, true
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts RFC3339 timestamps as well as plain dates.
func parseDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00+01:00
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseExpenseFilter reads the optional conjunctive query filters shared
// by the expense list and the aggregation endpoint. A parameter is a
// filter exactly when it is present, so category_id=0 filters on category
// id 0 instead of being dropped.
func parseExpenseFilter(c *gin.Context) (repository.ExpenseFilter, error) {
	var f repository.ExpenseFilter

	if s, ok := c.GetQuery("category_id"); ok {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return f, fmt.Errorf("invalid category_id %q", s)
		}
		v := uint(id)
		f.CategoryID = &v
	}
	if s, ok := c.GetQuery("min_amount"); ok {
		cents, err := util.ParseAmountCent(s)
		if err != nil {
			return f, err
		}
		f.MinAmountCent = &cents
	}
	if s, ok := c.GetQuery("max_amount"); ok {
		cents, err := util.ParseAmountCent(s)
		if err != nil {
			return f, err
		}
		f.MaxAmountCent = &cents
	}
	if s, ok := c.GetQuery("start_date"); ok {
		t, err := parseDate(s)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if s, ok := c.GetQuery("end_date"); ok {
		t, err := parseDate(s)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}

	return f, nil
}
