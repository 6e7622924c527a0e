package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"home-budget/internal/repository"
	"home-budget/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportHandler downloads the caller's expenses as CSV or XLSX.
type ExportHandler struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
}

func NewExportHandler(expenses *repository.ExpenseRepository, categories *repository.CategoryRepository) *ExportHandler {
	return &ExportHandler{expenses: expenses, categories: categories}
}

var exportHeader = []string{"ID", "Date", "Category", "Amount", "Description"}

// rows collects the caller's expenses with category names resolved.
func (h *ExportHandler) rows(c *gin.Context, userID uint) ([][]string, bool) {
	expenses, err := h.expenses.List(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list expenses")
		return nil, false
	}

	cats, err := h.categories.List(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list categories")
		return nil, false
	}
	names := make(map[uint]string, len(cats))
	for i := range cats {
		names[cats[i].ID] = cats[i].Name
	}

	rows := make([][]string, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.OccurredAt.Format("2006-01-02"),
			names[e.CategoryID],
			util.FormatCent(e.AmountCent),
			e.Description,
		})
	}
	return rows, true
}

func exportFilename(ext string) string {
	return fmt.Sprintf("expenses-%s-%s.%s",
		time.Now().Format("20060102"), uuid.New().String()[:8], ext)
}

// CSV streams the caller's expenses as a CSV attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	rows, ok := h.rows(c, user.ID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(exportHeader)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write csv")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// XLSX streams the caller's expenses as an Excel attachment.
func (h *ExportHandler) XLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	rows, ok := h.rows(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Expenses"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to build workbook")
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	write := func(rowNum int, values []string) {
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	write(1, exportHeader)
	for i, row := range rows {
		write(i+2, row)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
