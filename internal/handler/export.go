package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/policy"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the actor's transactions as CSV or XLSX. Admins
// export across all owners, matching the list scoping rule.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) transactions(user *models.User) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := h.DB.Scopes(policy.ScopeToOwner(user)).
		Preload("Category").
		Order("date DESC, id DESC").
		Find(&transactions).Error
	return transactions, err
}

func exportRow(t *models.Transaction) []string {
	category := ""
	if t.Category != nil {
		category = t.Category.Name
	}
	return []string{
		t.Type,
		category,
		t.Amount.StringFixed(2),
		t.Description,
		t.Date.Format("2006-01-02"),
	}
}

var exportHeaders = []string{"Type", "Category", "Amount", "Description", "Date"}

// ExportCSV writes the transaction list as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	transactions, err := h.transactions(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range transactions {
		writer.Write(exportRow(&transactions[i]))
	}
}

// ExportXLSX writes the transaction list as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	transactions, err := h.transactions(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range transactions {
		row := idx + 2
		for col, value := range exportRow(&transactions[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
