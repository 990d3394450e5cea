package api

import (
	"context"                       // Context for Redis operations
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"time"                          // Time durations
	"ledger_system/internal/auth"   // Credential encoding classification
	"ledger_system/internal/domain" // Importing domain models
	"ledger_system/internal/ledger" // Balance computation
	"ledger_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// UserAdminResponse represents the user data returned to admin. The stored
// credential itself never leaves the database; only its encoding is shown so
// operators can see which records still carry legacy hashes.
type UserAdminResponse struct {
	ID       uint   `json:"id"`       // User ID
	Email    string `json:"email"`    // Login email
	Role     string `json:"role"`     // User role
	Encoding string `json:"encoding"` // Credential encoding (plaintext/pbkdf2/bcrypt)
}

// ListUsersHandler returns all operator accounts with their credential encoding
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		// Try to get cached response
		var cached struct {
			Users      []UserAdminResponse `json:"users"`       // List of users
			Page       int                 `json:"page"`        // Current page
			PageSize   int                 `json:"page_size"`   // Page size
			Total      int64               `json:"total"`       // Total number of users
			TotalPages int                 `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		// Fetch total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"}) // Return on error
			return
		}
		var users []domain.User // Slice to hold users
		// Apply offset and limit for pagination
		if err := db.Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"}) // Return on error
			return
		}
		// The total number of pages
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Prepare response data
		resp := make([]UserAdminResponse, len(users))
		// Map users to response format
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:       u.ID,                             // User ID
				Email:    u.Email,                          // Login email
				Role:     u.Role,                           // User role
				Encoding: auth.Classify(u.Password).String(), // Credential encoding
			}
		}
		// Prepare final response data
		respData := gin.H{
			"users":       resp,       // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// CustomerAdminResponse represents one customer row in the admin overview
type CustomerAdminResponse struct {
	ID      uint   `json:"id"`      // Customer ID
	Name    string `json:"name"`    // Display name
	Phone   string `json:"phone"`   // Contact phone
	Years   int    `json:"years"`   // Number of year accounts
	Balance string `json:"balance"` // Aggregate balance, 2dp
}

// ListCustomersAdminHandler returns all customers with aggregate balances
func ListCustomersAdminHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:customers:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Customers  []CustomerAdminResponse `json:"customers"`   // List of customers
			Page       int                     `json:"page"`        // Current page
			PageSize   int                     `json:"page_size"`   // Page size
			Total      int64                   `json:"total"`       // Total number of customers
			TotalPages int                     `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"customers":   cached.Customers,  // List of customers
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of customers
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total customer count
		if err := db.Model(&domain.Customer{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count customers"}) // Return on error
			return
		}
		var customers []domain.Customer // Slice to hold customers
		// Preload the full ledger so balances can be computed per customer
		if err := db.Preload("Accounts.Payments").Offset(offset).Limit(pageSize).Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"}) // Return on error
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := make([]CustomerAdminResponse, len(customers))
		// Map customers to the admin overview format
		for i, cust := range customers {
			resp[i] = CustomerAdminResponse{
				ID:      cust.ID,                                    // Customer ID
				Name:    cust.Name,                                  // Display name
				Phone:   cust.Phone,                                 // Contact phone
				Years:   len(cust.Accounts),                         // Number of year accounts
				Balance: ledger.TotalBalance(cust).StringFixed(2),   // Aggregate balance
			}
		}
		respData := gin.H{
			"customers":   resp,       // List of customers
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of customers
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}
