package api

import (
	"net/http"                      // HTTP status codes
	"time"                          // Date handling
	"ledger_system/internal/domain" // Importing domain models
	"ledger_system/internal/ledger" // Validation and balance computation

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// AccountRequest represents a create-account request. Amounts travel as
// strings so they pass through the fixed-point validators, never floats.
type AccountRequest struct {
	Year        string `json:"year" binding:"required"`         // 4-digit year label
	InitialDebt string `json:"initial_debt" binding:"required"` // Opening debt, decimal string
}

// DebtRequest represents an update of an account's opening debt
type DebtRequest struct {
	InitialDebt string `json:"initial_debt" binding:"required"` // Opening debt, decimal string
}

// PaymentRequest represents a recorded payment
type PaymentRequest struct {
	Date   string `json:"date" binding:"required"`   // Any accepted date format
	Amount string `json:"amount" binding:"required"` // Positive decimal string
	Note   string `json:"note"`                      // Optional note
}

// AccountResponse is the ledger view of one year account
type AccountResponse struct {
	ID          uint   `json:"id"`           // Account ID
	Year        string `json:"year"`         // Year label
	InitialDebt string `json:"initial_debt"` // Opening debt, 2dp
	TotalPaid   string `json:"total_paid"`   // Sum of payments, 2dp
	Balance     string `json:"balance"`      // Remaining balance, 2dp (may be negative)
}

// accountResponses maps accounts to their ledger view, sorted by year
func accountResponses(accounts []domain.YearAccount) []AccountResponse {
	resp := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, AccountResponse{
			ID:          a.ID,                                // Account ID
			Year:        a.Year,                              // Year label
			InitialDebt: a.InitialDebt.StringFixed(2),        // Opening debt
			TotalPaid:   ledger.TotalPaid(a).StringFixed(2),  // Total paid
			Balance:     ledger.YearBalance(a).StringFixed(2), // Balance
		})
	}
	return resp
}

// CreateAccountHandler opens a year account for a customer
func CreateAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var req AccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Year and initial debt are required"})
			return
		}
		// Validate the year label
		if err := ledger.ValidateYear(req.Year); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Parse the opening debt (zero allowed, negative rejected)
		debt, err := ledger.ParseInitialDebt(req.InitialDebt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var customer domain.Customer // Owning customer must exist
		if err := db.First(&customer, customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		// One account per (customer, year); pre-check before hitting the unique index
		var existing domain.YearAccount
		if err := db.Where("customer_id = ? AND year = ?", customerID, req.Year).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account for this year already exists"})
			return
		}
		account := domain.YearAccount{CustomerID: customerID, Year: req.Year, InitialDebt: debt}
		// Attempt to create the account (unique index catches races)
		if err := db.Create(&account).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account for this year already exists"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"customer_id":  customerID,                // Customer ID
			"account_id":   account.ID,                // Account ID
			"year":         account.Year,              // Year label
			"initial_debt": debt.StringFixed(2),       // Opening debt
		}).Info("Year account created")
		invalidateCustomerCache(c, customerID) // Drop stale balance cache
		c.JSON(http.StatusCreated, gin.H{"message": "Account created", "account": accountResponses([]domain.YearAccount{account})[0]})
	}
}

// ListAccountsHandler returns a customer's year accounts with balances
func ListAccountsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var customer domain.Customer // Owning customer must exist
		if err := db.First(&customer, customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		var accounts []domain.YearAccount // Accounts sorted by year ascending
		if err := db.Preload("Payments").Where("customer_id = ?", customerID).Order("year asc").Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": accountResponses(accounts)})
	}
}

// UpdateAccountHandler sets an account's opening debt
func UpdateAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := parseIDParam(c, "id") // Account ID from path
		if !ok {
			return
		}
		var req DebtRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Initial debt is required"})
			return
		}
		// Parse the opening debt (zero allowed, negative rejected)
		debt, err := ledger.ParseInitialDebt(req.InitialDebt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var account domain.YearAccount // Fetch existing account
		if err := db.First(&account, accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		// Apply the new opening debt
		if err := db.Model(&account).Update("initial_debt", debt).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			return
		}
		invalidateCustomerCache(c, account.CustomerID) // Drop stale balance cache
		c.JSON(http.StatusOK, gin.H{"message": "Account updated"})
	}
}

// DeleteAccountHandler removes a year account and its payments
func DeleteAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := parseIDParam(c, "id") // Account ID from path
		if !ok {
			return
		}
		var account domain.YearAccount // Fetch existing account
		if err := db.First(&account, accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		// Delete the row; FK constraint cascades to payments
		if err := db.Delete(&account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		invalidateCustomerCache(c, account.CustomerID) // Drop stale balance cache
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}

// CreatePaymentHandler records a payment against a year account
func CreatePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := parseIDParam(c, "id") // Account ID from path
		if !ok {
			return
		}
		var req PaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date and amount are required"})
			return
		}
		// Normalize the date; reject anything outside the accepted formats
		iso, err := ledger.ParseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Parse the amount; zero and negative are rejected
		amount, err := ledger.ParsePaymentAmount(req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var account domain.YearAccount // Owning account must exist
		if err := db.First(&account, accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		date, _ := time.Parse(ledger.ISODate, iso) // Normalized by ParseDate, cannot fail
		payment := domain.Payment{YearAccountID: account.ID, Date: date, Amount: amount, Note: req.Note}
		// Attempt to create the payment
		if err := db.Create(&payment).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ID,  // Account ID
				"error":      err.Error(), // Error message
			}).Error("Failed to record payment")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}
		// Log successful payment
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,             // Account ID
			"payment_id": payment.ID,             // Payment ID
			"date":       iso,                    // Normalized date
			"amount":     amount.StringFixed(2),  // Paid amount
		}).Info("Payment recorded")
		invalidateCustomerCache(c, account.CustomerID) // Drop stale balance cache
		c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded", "payment": gin.H{
			"id":     payment.ID,            // Payment ID
			"date":   iso,                   // Normalized date
			"amount": amount.StringFixed(2), // Paid amount
			"note":   payment.Note,          // Optional note
		}})
	}
}

// ListPaymentsHandler returns an account's payments in date order
func ListPaymentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := parseIDParam(c, "id") // Account ID from path
		if !ok {
			return
		}
		var account domain.YearAccount // Owning account must exist
		if err := db.First(&account, accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		var payments []domain.Payment // Payments sorted by date ascending
		if err := db.Where("year_account_id = ?", accountID).Order("date asc, id asc").Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
			return
		}
		resp := make([]gin.H, 0, len(payments)) // Render dates and amounts as fixed strings
		for _, p := range payments {
			resp = append(resp, gin.H{
				"id":     p.ID,                          // Payment ID
				"date":   p.Date.Format(ledger.ISODate), // ISO date
				"amount": p.Amount.StringFixed(2),       // Paid amount
				"note":   p.Note,                        // Optional note
			})
		}
		c.JSON(http.StatusOK, gin.H{"payments": resp})
	}
}

// DeletePaymentHandler removes a recorded payment
func DeletePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID, ok := parseIDParam(c, "id") // Payment ID from path
		if !ok {
			return
		}
		var payment domain.Payment // Fetch existing payment
		if err := db.First(&payment, paymentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		var account domain.YearAccount // Owning account, needed for cache invalidation
		if err := db.First(&account, payment.YearAccountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		// Delete the payment row
		if err := db.Delete(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
			return
		}
		invalidateCustomerCache(c, account.CustomerID) // Drop stale balance cache
		c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
	}
}
