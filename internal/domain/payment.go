package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment Model
type Payment struct {
	ID            uint            `gorm:"primaryKey"`                  // Primary key
	YearAccountID uint            `gorm:"index;not null"`              // Foreign key to YearAccount
	Date          time.Time       `gorm:"type:date;not null"`          // Calendar date of the payment
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Paid amount, validated > 0 before persistence
	Note          string          `gorm:"size:200"`                    // Optional free-text note
}
