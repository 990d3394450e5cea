package main

import (
	"context"                           // context package is needed for Redis operations
	"log"                               // log package is needed for logging
	"ledger_system/internal/api"        // Custom package for API handlers
	"ledger_system/internal/auth"       // Credential verification
	"ledger_system/internal/config"     // Custom package for configuration
	"ledger_system/internal/db"         // Schema migration and admin seeding
	"ledger_system/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Fail fast on missing database configuration
	if cfg.DBHost == "" || cfg.DBName == "" {
		logrus.Fatal("database configuration is not set")
	}

	// Connect to the database
	gdb, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Ensure schema and admin user exist (both idempotent)
	if err := db.AutoMigrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate schema: %v", err)
	}
	if err := db.EnsureAdmin(gdb, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatalf("failed to seed admin user: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Credential verifier; plaintext fallback is off unless explicitly enabled
	verifier := auth.Verifier{AllowPlaintext: cfg.AllowPlaintext}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Healthcheck
	r.GET("/health", func(c *gin.Context) { c.String(200, "ok") })

	// Auth routes
	r.POST("/user", api.RegisterHandler(gdb))                       // Registration endpoint
	r.POST("/login", api.LoginHandler(gdb, cfg.JWTSecret, verifier)) // Login endpoint

	// Ledger routes (protected by JWT)
	ledgerGroup := r.Group("/")
	// Protect ledger routes with JWT middleware and inject Redis client into context
	ledgerGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	ledgerGroup.POST("/customers", api.CreateCustomerHandler(gdb))                 // Create customer endpoint
	ledgerGroup.GET("/customers", api.ListCustomersHandler(gdb, redisClient))      // List customers endpoint
	ledgerGroup.GET("/customers/:id", api.GetCustomerHandler(gdb))                 // Get customer endpoint
	ledgerGroup.PUT("/customers/:id", api.UpdateCustomerHandler(gdb))              // Edit customer endpoint
	ledgerGroup.DELETE("/customers/:id", api.DeleteCustomerHandler(gdb))           // Delete customer endpoint (cascades)
	ledgerGroup.GET("/customers/:id/balance", api.GetBalanceHandler(gdb, redisClient)) // Balance summary endpoint
	ledgerGroup.POST("/customers/:id/accounts", api.CreateAccountHandler(gdb))     // Open year account endpoint
	ledgerGroup.GET("/customers/:id/accounts", api.ListAccountsHandler(gdb))       // List year accounts endpoint
	ledgerGroup.GET("/customers/:id/report", api.AllYearsReportHandler(gdb))       // Combined report download
	ledgerGroup.GET("/customers/:id/report.zip", api.ArchiveReportHandler(gdb))    // Batch archive download
	ledgerGroup.PUT("/accounts/:id", api.UpdateAccountHandler(gdb))                // Set initial debt endpoint
	ledgerGroup.DELETE("/accounts/:id", api.DeleteAccountHandler(gdb))             // Delete year account endpoint
	ledgerGroup.GET("/accounts/:id/report", api.YearReportHandler(gdb))            // Year report download
	ledgerGroup.POST("/accounts/:id/payments", api.CreatePaymentHandler(gdb))      // Record payment endpoint
	ledgerGroup.GET("/accounts/:id/payments", api.ListPaymentsHandler(gdb))        // List payments endpoint
	ledgerGroup.DELETE("/payments/:id", api.DeletePaymentHandler(gdb))             // Delete payment endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(gdb))
	adminGroup.GET("/users", api.ListUsersHandler(gdb, redisClient))               // List operator accounts endpoint
	adminGroup.GET("/customers", api.ListCustomersAdminHandler(gdb, redisClient))  // Customer overview endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
