package models

import "time"

// PermissionStatus is the state of a leave-permission request.
type PermissionStatus string

const (
	PermissionPending  PermissionStatus = "PENDING"
	PermissionApproved PermissionStatus = "APPROVED"
	PermissionRejected PermissionStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transitions.
// APPROVED and REJECTED are terminal; only PENDING requests may move.
func (s PermissionStatus) IsTerminal() bool {
	return s == PermissionApproved || s == PermissionRejected
}

// Valid reports whether s is one of the known statuses.
func (s PermissionStatus) Valid() bool {
	switch s {
	case PermissionPending, PermissionApproved, PermissionRejected:
		return true
	}
	return false
}

// PermissionRequest defines the leave-permission model based on the
// 'permission_requests' table.
type PermissionRequest struct {
	ID        int64            `json:"id" db:"id" example:"1"`
	StudentID int64            `json:"studentId" db:"student_id" example:"7"`
	StartDate time.Time        `json:"startDate" db:"start_date"`                  // First day covered by the permission
	EndDate   time.Time        `json:"endDate" db:"end_date"`                      // Last day covered by the permission
	Reason    string           `json:"reason" db:"reason"`                         // Free-text justification
	Status    PermissionStatus `json:"status" db:"status" example:"PENDING"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`                  // Immutable, set at creation

	// Relations (populated when needed)
	Student *StudentProfile `json:"student,omitempty"`
}
