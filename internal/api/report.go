package api

import (
	"context"                       // Context for Redis operations
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"time"                          // Generation date and cache TTLs
	"ledger_system/internal/domain" // Importing domain models
	"ledger_system/internal/ledger" // Report composition
	"ledger_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// GetBalanceHandler returns a customer's per-year and total balances, cached
// in Redis for 60 seconds; ledger mutations invalidate the key
func GetBalanceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		ctx := context.Background()                                       // Context for Redis operations
		cacheKey := "balance:customer:" + strconv.Itoa(int(customerID)) // Cache key for this customer
		var cached struct {
			Accounts []AccountResponse `json:"accounts"` // Per-year balances
			Balance  string            `json:"balance"`  // Aggregate balance
		}
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"accounts": cached.Accounts, "balance": cached.Balance, "cached": true})
			return
		}
		var customer domain.Customer // Fetch customer with the full ledger
		if err := db.Preload("Accounts.Payments").First(&customer, customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		resp := gin.H{
			"accounts": accountResponses(customer.Accounts),          // Per-year balances
			"balance":  ledger.TotalBalance(customer).StringFixed(2), // Aggregate balance
			"cached":   false,                                        // Not from cache
		}
		// Cache the result for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// YearReportHandler downloads one year's ledger as a plain-text file
func YearReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := parseIDParam(c, "id") // Account ID from path
		if !ok {
			return
		}
		var account domain.YearAccount // Fetch account with payments
		if err := db.Preload("Payments").First(&account, accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		var customer domain.Customer // Owning customer for the report header
		if err := db.First(&customer, account.CustomerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		report := ledger.ComposeYearReport(customer, account, time.Now()) // Generation date is now
		// Serve as a text file download
		c.Header("Content-Disposition", "attachment; filename=report_"+account.Year+".txt")
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
	}
}

// AllYearsReportHandler downloads a customer's full ledger as one text file
func AllYearsReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var customer domain.Customer // Fetch customer with the full ledger
		if err := db.Preload("Accounts.Payments").First(&customer, customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		report := ledger.ComposeAllYearsReport(customer, time.Now()) // Generation date is now
		// Serve as a text file download
		c.Header("Content-Disposition", "attachment; filename=report_all_years.txt")
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
	}
}

// ArchiveReportHandler downloads one zip with a text report per year
func ArchiveReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var customer domain.Customer // Fetch customer with the full ledger
		if err := db.Preload("Accounts.Payments").First(&customer, customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		archive, err := ledger.ArchiveReports(customer, time.Now()) // Build the zip in memory
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build archive"})
			return
		}
		// Serve as a zip download
		c.Header("Content-Disposition", "attachment; filename=reports.zip")
		c.Data(http.StatusOK, "application/zip", archive)
	}
}
