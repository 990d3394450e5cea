package api

import (
	"context"                       // Context for Redis operations
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"time"                          // Time durations
	"ledger_system/internal/domain" // Importing domain models
	"ledger_system/internal/ledger" // Balance computation
	"ledger_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// CustomerRequest represents a create/update customer request
type CustomerRequest struct {
	Name  string `json:"name" binding:"required"` // Display name
	Phone string `json:"phone"`                   // Contact phone
	Notes string `json:"notes"`                   // Free-text notes
}

// invalidateCustomerCache drops the cached balance for a customer along with
// the cached customer list pages (simple version: delete first 5 pages)
func invalidateCustomerCache(c *gin.Context, customerID uint) {
	rdb, ok := c.MustGet("redisClient").(*redis.Client) // Redis client injected by the route group
	if !ok {
		return
	}
	ctx := context.Background() // Context for Redis operations
	keys := []string{"balance:customer:" + strconv.Itoa(int(customerID))}
	for i := 1; i <= 5; i++ {
		keys = append(keys, "customers:page:"+strconv.Itoa(i)+":size:20")
	}
	_ = utils.DeleteCache(ctx, rdb, keys...) // Invalidate; cache misses are harmless
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// CreateCustomerHandler adds a new customer
func CreateCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CustomerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
			return
		}
		customer := domain.Customer{Name: req.Name, Phone: req.Phone, Notes: req.Notes}
		// Attempt to create the customer in the database
		if err := db.Create(&customer).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Customer name
				"error": err.Error(), // Error message
			}).Error("Failed to create customer") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"customer_id": customer.ID,                     // Customer ID
			"name":        customer.Name,                   // Customer name
			"timestamp":   time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Customer created")
		invalidateCustomerCache(c, customer.ID) // Drop stale list pages
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Customer created", "customer": customer})
	}
}

// ListCustomersHandler returns customers with pagination, cached in Redis
func ListCustomersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page
		pageSize := 20 // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := "customers:page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		var cached struct {
			Customers  []domain.Customer `json:"customers"`   // List of customers
			Page       int               `json:"page"`        // Current page
			PageSize   int               `json:"page_size"`   // Page size
			Total      int64             `json:"total"`       // Total customers
			TotalPages int               `json:"total_pages"` // Total pages
		}
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"customers":   cached.Customers,  // Cached customers
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total customers
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,
			})
			return
		}
		offset := (page - 1) * pageSize // Calculate offset
		var total int64                 // Total count of customers
		if err := db.Model(&domain.Customer{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers"})
			return
		}
		var customers []domain.Customer // Slice to hold customers
		// Fetch paginated customers, newest first like the ledger index page
		if err := db.Order("id desc").Offset(offset).Limit(pageSize).Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := gin.H{
			"customers":   customers,  // List of customers
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total customers
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Not from cache
		}
		// Cache the result for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return customer list
	}
}

// GetCustomerHandler returns one customer with accounts and balances
func GetCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var customer domain.Customer // Fetch customer with the full ledger
		if err := db.Preload("Accounts.Payments").First(&customer, id).Error; err != nil {
			// Return not found if customer doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer": customer,                                      // Customer with accounts
			"accounts": accountResponses(customer.Accounts),           // Per-year balances
			"balance":  ledger.TotalBalance(customer).StringFixed(2),  // Aggregate balance
		})
	}
}

// UpdateCustomerHandler edits a customer's identity attributes
func UpdateCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var req CustomerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
			return
		}
		var customer domain.Customer // Fetch existing customer
		if err := db.First(&customer, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		// Apply the new attributes
		customer.Name = req.Name
		customer.Phone = req.Phone
		customer.Notes = req.Notes
		if err := db.Save(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
			return
		}
		invalidateCustomerCache(c, customer.ID) // Drop stale cache entries
		c.JSON(http.StatusOK, gin.H{"message": "Customer updated", "customer": customer})
	}
}

// DeleteCustomerHandler removes a customer; accounts and payments go with it
func DeleteCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id") // Customer ID from path
		if !ok {
			return
		}
		var customer domain.Customer // Fetch existing customer
		if err := db.First(&customer, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		// Delete the row; FK constraints cascade to accounts and payments
		if err := db.Delete(&customer).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": id,          // Customer ID
				"error":       err.Error(), // Error message
			}).Error("Failed to delete customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"customer_id": id,                              // Customer ID
			"timestamp":   time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Customer deleted")
		invalidateCustomerCache(c, id) // Drop stale cache entries
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
