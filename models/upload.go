package models

import (
	"time"
)

// Upload records a stored receipt image. When OCR pulled a usable amount out
// of it, ExpenseID links to the expense it produced; otherwise the row is
// marked failed and kept so it can be reviewed instead of silently dropped.
type Upload struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       uint   `gorm:"index;not null;uniqueIndex:idx_user_upload_file"`
	FileName     string `gorm:"size:255;not null;uniqueIndex:idx_user_upload_file"`
	StorePath    string `gorm:"column:store_path;size:512"`
	ContentType  string `gorm:"size:128"`
	ExpenseID    *uint  `gorm:"index"`
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
