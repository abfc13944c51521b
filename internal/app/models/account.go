package models

import (
	"time"
)

// Account defines the login account model based on the 'accounts' table
type Account struct {
	ID          int64     `json:"id" db:"id" example:"1"`                            // Unique identifier for the account
	Username    string    `json:"username" db:"username" example:"mgonzalez"`        // Login name, unique
	Password    string    `json:"-" db:"password"`                                   // Hashed password (excluded from JSON)
	IsStaff     bool      `json:"isStaff" db:"is_staff" example:"false"`             // Whether the account may use the administrative API
	IsSuperuser bool      `json:"isSuperuser" db:"is_superuser" example:"false"`     // Whether the account administers every course
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`                         // Timestamp when the account was created

	// Relations (populated when needed)
	AssignedCourses []*Course `json:"assignedCourses,omitempty"` // Courses this staff account administers; irrelevant for superusers
}

// IsAdmin reports whether the account may access administrative operations.
// Pure predicate over the account value; callers pass the account explicitly.
func (a *Account) IsAdmin() bool {
	return a.IsStaff || a.IsSuperuser
}
