package dto

import "github.com/drivera/aulanet/internal/app/services"

// DashboardResponse is the administrator landing summary
type DashboardResponse struct {
	Filter                FilterInfo            `json:"filter"`
	TotalStudents         int                   `json:"totalStudents" example:"42"`
	PendingPermissions    int                   `json:"pendingPermissions" example:"3"`
	RecentStudents        []*StudentResponse    `json:"recentStudents"`
	RecentPendingRequests []*PermissionResponse `json:"recentPendingRequests"`
}

// NewDashboardResponse maps a dashboard summary to its response form
func NewDashboardResponse(s *services.DashboardSummary) *DashboardResponse {
	return &DashboardResponse{
		Filter:                NewFilterInfo(s.Filter),
		TotalStudents:         s.TotalStudents,
		PendingPermissions:    s.PendingPermits,
		RecentStudents:        NewStudentResponseList(s.RecentStudents),
		RecentPendingRequests: NewPermissionResponseList(s.RecentPendingReqs),
	}
}
