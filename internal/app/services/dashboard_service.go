package services

import (
	"context"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
)

// recentLimit bounds the recent-activity lists on the dashboard.
const recentLimit = 5

// DashboardStudents is the student surface the dashboard reads.
// *repositories.StudentRepository satisfies it.
type DashboardStudents interface {
	CountByFilter(ctx context.Context, f scope.Filter) (int, error)
	ListRecent(ctx context.Context, f scope.Filter, limit int) ([]*models.StudentProfile, error)
}

// DashboardPermissions is the permission surface the dashboard reads.
// *repositories.PermissionRepository satisfies it.
type DashboardPermissions interface {
	CountPendingByFilter(ctx context.Context, f scope.Filter) (int, error)
	ListByFilter(ctx context.Context, f scope.Filter, status *models.PermissionStatus, limit int) ([]*models.PermissionRequest, error)
}

// DashboardSummary is the administrator landing view: per-scope totals
// and recent activity, optionally narrowed to one course.
type DashboardSummary struct {
	Filter            scope.Filter
	TotalStudents     int
	PendingPermits    int
	RecentStudents    []*models.StudentProfile
	RecentPendingReqs []*models.PermissionRequest
}

// DashboardService aggregates the administrator dashboard numbers
type DashboardService struct {
	students    DashboardStudents
	permissions DashboardPermissions
	courses     scope.CourseDirectory
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(students DashboardStudents, permissions DashboardPermissions, courses scope.CourseDirectory) *DashboardService {
	return &DashboardService{
		students:    students,
		permissions: permissions,
		courses:     courses,
	}
}

// Summary computes the dashboard for the acting administrator through
// the course filter pipeline.
func (s *DashboardService) Summary(ctx context.Context, actor *models.Account, requestedCourseID *int64) (*DashboardSummary, error) {
	filter, err := scope.ResolveCourseFilter(ctx, s.courses, actor, requestedCourseID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{Filter: filter}

	if summary.TotalStudents, err = s.students.CountByFilter(ctx, filter); err != nil {
		return nil, err
	}
	if summary.PendingPermits, err = s.permissions.CountPendingByFilter(ctx, filter); err != nil {
		return nil, err
	}
	if summary.RecentStudents, err = s.students.ListRecent(ctx, filter, recentLimit); err != nil {
		return nil, err
	}

	pending := models.PermissionPending
	if summary.RecentPendingReqs, err = s.permissions.ListByFilter(ctx, filter, &pending, recentLimit); err != nil {
		return nil, err
	}

	return summary, nil
}
