package domain

import "github.com/shopspring/decimal"

// YearAccount Model: a customer's debt ledger for one calendar year
type YearAccount struct {
	ID          uint            `gorm:"primaryKey"`                                    // Primary key
	CustomerID  uint            `gorm:"uniqueIndex:idx_customer_year;not null"`        // Foreign key to Customer
	Year        string          `gorm:"uniqueIndex:idx_customer_year;type:char(4)"`    // 4-digit year label, unique per customer
	InitialDebt decimal.Decimal `gorm:"type:decimal(10,2);not null"`                   // Opening debt before any payments
	Payments    []Payment       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Recorded payments, removed with the account
}
