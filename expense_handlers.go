package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"finbud/models"
	"finbud/pkg/ledger"
	"finbud/pkg/ocr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// listExpensesHandler returns the authenticated user's expenses, newest first.
func listExpensesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.Expense
	if err := db.Where("user_id = ?", user.ID).Order("date desc, id desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get expenses"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func createExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Amount        float64 `json:"amount" binding:"required"`
		Category      string  `json:"category" binding:"required"`
		ModeOfPayment string  `json:"mode_of_payment" binding:"required"`
		Type          string  `json:"type" binding:"required,oneof=EXPENSE INCOME"`
		Date          string  `json:"date"` // RFC3339 or YYYY-MM-DD, defaults to now
		Description   string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	cat, ok := ledger.ParseCategory(req.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	mode, ok := models.ParseModeOfPayment(req.ModeOfPayment)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode of payment"})
		return
	}
	date := time.Now()
	if req.Date != "" {
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			t, err = time.Parse("2006-01-02", req.Date)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		date = t
	}
	e := models.Expense{
		UserID:        user.ID,
		Amount:        req.Amount,
		Category:      cat,
		ModeOfPayment: mode,
		IsIncome:      req.Type == "INCOME",
		Date:          date,
		Description:   req.Description,
	}
	if err := db.Create(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense created successfully", "id": e.ID})
}

// createExpensesBulkHandler records several expenses sharing one date, as
// produced by the receipt-scanning flow. Unrecognized categories fall back to
// OTHER instead of failing the batch; everything is written in one
// transaction.
func createExpensesBulkHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Date struct {
			Day   int `json:"day" binding:"required,min=1,max=31"`
			Month int `json:"month" binding:"required,min=1,max=12"`
			Year  int `json:"year" binding:"required,min=2000"`
		} `json:"date" binding:"required"`
		Expenses []struct {
			Category    string  `json:"category" binding:"required"`
			Amount      float64 `json:"amount" binding:"required"`
			Description string  `json:"description"`
		} `json:"expenses" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := time.Date(req.Date.Year, time.Month(req.Date.Month), req.Date.Day, 0, 0, 0, 0, time.UTC)
	rows := make([]models.Expense, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		if e.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		rows = append(rows, models.Expense{
			UserID:        user.ID,
			Amount:        e.Amount,
			Category:      ledger.ParseCategoryOrOther(e.Category),
			ModeOfPayment: models.PaymentCash,
			IsIncome:      false,
			Date:          date,
			Description:   e.Description,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expenses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expenses created successfully"})
}

func deleteExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id := c.Param("id")
	var e models.Expense
	if err := db.First(&e, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if e.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := db.Delete(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted successfully"})
}

// expensesGraphHandler returns the trailing-week daily income/expense sums
// for the chart view.
func expensesGraphHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.Expense
	if err := db.Select("amount", "date", "is_income").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get expenses for graph"})
		return
	}
	flows := make([]ledger.Flow, len(items))
	for i, e := range items {
		flows[i] = ledger.Flow{Amount: e.Amount, Date: e.Date, IsIncome: e.IsIncome}
	}
	c.JSON(http.StatusOK, ledger.AggregateByDay(flows, 7, time.Now()))
}

// uploadReceiptHandler stores a receipt image for the current user and tries
// to OCR an amount out of it. A plausible amount becomes an OTHER/CASH
// expense linked to the upload; an unreadable receipt keeps its upload row
// with the failure reason so nothing disappears silently.
func uploadReceiptHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	folder := c.PostForm("folder")
	if folder == "" {
		folder = "receipts"
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	// Same receipt re-uploaded: return the existing record instead of
	// creating a duplicate expense.
	var existing models.Upload
	if err := db.Where("user_id = ? AND file_name = ?", user.ID, file.Filename).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"id": existing.ID, "store_path": existing.StorePath, "expense_id": existing.ExpenseID})
		return
	}

	baseDir := uploadBaseDir()
	relPath := folder + "/" + file.Filename
	fullPath := baseDir + "/" + relPath
	if err := os.MkdirAll(baseDir+"/"+folder, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	up := models.Upload{
		UserID:      user.ID,
		FileName:    file.Filename,
		StorePath:   relPath,
		ContentType: file.Header.Get("Content-Type"),
	}
	amount, _, _, ocrErr := ocr.ExtractAmountFromImage(fullPath)
	if ocrErr != nil || amount <= 0 {
		up.Failed = true
		up.FailedReason = "no amount detected"
		if ocrErr != nil && !errors.Is(ocrErr, ocr.ErrNoAmount) {
			up.FailedReason = ocrErr.Error()
		}
		if err := db.Create(&up).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": up.ID, "store_path": relPath, "expense_id": nil})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		e := models.Expense{
			UserID:        user.ID,
			Amount:        amount,
			Category:      ledger.Other,
			ModeOfPayment: models.PaymentCash,
			Date:          time.Now(),
			Description:   "receipt " + file.Filename,
		}
		if err := tx.Create(&e).Error; err != nil {
			return err
		}
		up.ExpenseID = &e.ID
		return tx.Create(&up).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": up.ID, "store_path": relPath, "expense_id": up.ExpenseID})
}

// listUploadsHandler returns uploads; admin sees all, user only their own.
func listUploadsHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var uploads []models.Upload
	q := db.Model(&models.Upload{})
	if role != "administrator" {
		q = q.Where("user_id = ?", user.ID)
	}
	if err := q.Order("id desc").Limit(100).Find(&uploads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, uploads)
}

// getUploadHandler returns a single upload if admin or owner.
func getUploadHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var up models.Upload
	if err := db.First(&up, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if role != "administrator" && up.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, up)
}
