package domain

// Customer Model
type Customer struct {
	ID       uint          `gorm:"primaryKey"` // Primary key
	Name     string        `gorm:"size:150;not null"` // Display name
	Phone    string        `gorm:"size:50"`    // Contact phone
	Notes    string        `gorm:"type:text"`  // Free-text operator notes
	Accounts []YearAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Owned year accounts, removed with the customer
}
