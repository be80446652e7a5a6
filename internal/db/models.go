package db

import "gorm.io/gorm"

// Order records a fulfilled checkout session. SessionID is unique so a
// redelivered webhook for the same session is detected instead of fulfilled
// twice.
type Order struct {
	gorm.Model
	SessionID     string `gorm:"uniqueIndex"`
	CourseID      string
	CourseName    string
	CustomerEmail string
	CustomerName  string
	AmountTotal   int64
	Currency      string
}

// Lead is a captured contact from the lead-gate form.
type Lead struct {
	gorm.Model
	LeadID   string `gorm:"uniqueIndex"`
	Name     string
	Email    string `gorm:"uniqueIndex"`
	Interest string
}
