package db

import (
	"ledger_system/internal/auth"   // Credential hashing for the seeded admin
	"ledger_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates/updates the schema on an existing connection. Safe to
// run repeatedly; the server calls it at startup.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Customer{}, &domain.YearAccount{}, &domain.Payment{})
}

// EnsureAdmin seeds the admin user once. Idempotent: it does nothing when the
// email is empty or the user already exists. The seeded credential uses the
// pbkdf2 encoding so the verifier's legacy path stays exercised in every
// deployment.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	if email == "" {
		return nil // Seeding disabled
	}
	var existing domain.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil // Admin already present
	}
	hash, err := auth.GeneratePBKDF2(password)
	if err != nil {
		return err
	}
	user := domain.User{Email: email, Password: hash, Role: "admin"}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	logrus.WithField("email", email).Info("Admin user created")
	return nil
}
