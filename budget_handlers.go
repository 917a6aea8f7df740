package main

import (
	"errors"
	"log"
	"net/http"

	"finbud/models"
	"finbud/pkg/ledger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// errBudgetConflict signals that a concurrent acceptance committed between
// the version read and the update.
var errBudgetConflict = errors.New("budget was modified concurrently")

// setIncomeHandler declares the user's income. A declared total budget may
// accompany it but must stay within income.
func setIncomeHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Income      float64 `json:"income" binding:"required"`
		TotalBudget float64 `json:"total_budget"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Income < 0 || req.TotalBudget < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "income and total budget must be non-negative"})
		return
	}
	if req.TotalBudget > req.Income {
		c.JSON(http.StatusBadRequest, gin.H{"error": ledger.ErrExceedsIncome.Error()})
		return
	}
	updates := map[string]interface{}{"income": req.Income, "total_budget": req.TotalBudget}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set income"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "income set successfully"})
}

// predictBudgetHandler asks the prediction service for a proposal based on
// the user's income and implied savings. The proposal is validated against
// income and returned as a draft; nothing is persisted until the user
// accepts it through modifyBudget.
func predictBudgetHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	proposal, err := recommender.Recommend(c.Request.Context(), user.Income, user.Income-user.TotalBudget)
	if err != nil {
		log.Printf("recommendation failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get recommendation"})
		return
	}
	alloc, err := ledger.ParseEntries(proposal)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get recommendation"})
		return
	}
	// First invariant check. A proposal past the user's income is as useless
	// as a malformed one; the user falls back to manual entry.
	if err := ledger.Validate(alloc, user.Income); err != nil {
		log.Printf("recommendation for user %d violates income invariant: %v", user.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get recommendation"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// modifyBudgetHandler accepts a (possibly edited) allocation ledger. This is
// the authoritative validation point; the total budget is recomputed here and
// never taken from the request.
func modifyBudgetHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		BudgetData []ledger.Entry `json:"budget_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	alloc, err := ledger.ParseEntries(req.BudgetData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ledger.Validate(alloc, user.Income); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := commitBudget(user.ID, alloc); err != nil {
		if errors.Is(err, errBudgetConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "budget was modified concurrently, retry"})
			return
		}
		log.Printf("budget commit failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept budget"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "budget accepted successfully"})
}

// commitBudget persists accepted allocations: the per-category budget row and
// the user's recomputed total, atomically. The budget row's version guards
// against a concurrent acceptance; on a version mismatch nothing is written.
func commitBudget(userID uint, alloc ledger.Allocations) error {
	var b models.Budget
	err := db.Where("user_id = ?", userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// registration creates the row, but tolerate its absence
		total := ledger.Sum(alloc)
		return db.Transaction(func(tx *gorm.DB) error {
			nb := models.Budget{UserID: userID, Version: 1}
			nb.SetAllocations(alloc)
			if err := tx.Create(&nb).Error; err != nil {
				if isUniqueConstraintError(err) {
					return errBudgetConflict
				}
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", userID).Update("total_budget", total).Error
		})
	}
	if err != nil {
		return err
	}
	return commitBudgetAt(userID, alloc, b.Version)
}

// commitBudgetAt performs the two writes provided the budget row is still at
// readVersion. A concurrent acceptance that committed after the version was
// read leaves RowsAffected at zero and the whole transaction rolls back.
func commitBudgetAt(userID uint, alloc ledger.Allocations, readVersion uint) error {
	total := ledger.Sum(alloc)
	return db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"version": readVersion + 1}
		for _, cat := range ledger.Categories() {
			if v, ok := alloc[cat]; ok {
				updates[cat.Column()] = v
			} else {
				updates[cat.Column()] = nil
			}
		}
		res := tx.Model(&models.Budget{}).
			Where("user_id = ? AND version = ?", userID, readVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errBudgetConflict
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("total_budget", total).Error
	})
}

// getBudgetHandler returns the stored ledger in canonical category order.
func getBudgetHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var b models.Budget
	if err := db.Where("user_id = ?", user.ID).First(&b).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		return
	}
	c.JSON(http.StatusOK, ledger.FromAllocations(b.Allocations()))
}
