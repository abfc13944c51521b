package dto

import (
	"time"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/helpers"
)

// CreatePermissionRequest represents a student requesting leave
type CreatePermissionRequest struct {
	StartDate string `json:"startDate" binding:"required" example:"2026-03-12"`
	EndDate   string `json:"endDate" binding:"required" example:"2026-03-14"`
	Reason    string `json:"reason" binding:"required"`
}

// PermissionResponse represents a leave-permission request
type PermissionResponse struct {
	ID          int64     `json:"id" example:"1"`
	StudentID   int64     `json:"studentId" example:"7"`
	StudentName string    `json:"studentName,omitempty" example:"Ana María González Pérez"`
	StartDate   string    `json:"startDate" example:"2026-03-12"`
	EndDate     string    `json:"endDate" example:"2026-03-14"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status" example:"PENDING" enums:"PENDING,APPROVED,REJECTED"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PermissionListResponse pairs a permission listing with the filter applied
type PermissionListResponse struct {
	Filter      FilterInfo            `json:"filter"`
	Permissions []*PermissionResponse `json:"permissions"`
}

// NewPermissionResponse maps a permission request to its response form
func NewPermissionResponse(p *models.PermissionRequest) *PermissionResponse {
	if p == nil {
		return nil
	}
	resp := &PermissionResponse{
		ID:        p.ID,
		StudentID: p.StudentID,
		StartDate: p.StartDate.Format(helpers.DateLayout),
		EndDate:   p.EndDate.Format(helpers.DateLayout),
		Reason:    p.Reason,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
	if p.Student != nil {
		resp.StudentName = p.Student.Names + " " + p.Student.Surnames
	}
	return resp
}

// NewPermissionResponseList maps a slice of permission requests
func NewPermissionResponseList(perms []*models.PermissionRequest) []*PermissionResponse {
	out := make([]*PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, NewPermissionResponse(p))
	}
	return out
}
