package domain

// User Model (operator credential record)
type User struct {
	ID       uint   `gorm:"primaryKey"`        // Primary key
	Email    string `gorm:"unique;not null"`   // Unique login email
	Password string `gorm:"size:200;not null"` // Stored credential string (encoding varies, see internal/auth)
	Role     string `gorm:"default:user"`      // Role: user or admin
}
