package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivera/aulanet/internal/app/scope"
)

// Repositories holds all the repository instances
type Repositories struct {
	Account    *AccountRepository
	Course     *CourseRepository
	Student    *StudentRepository
	Attendance *AttendanceRepository
	Permission *PermissionRepository
	Feedback   *FeedbackRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Account:    NewAccountRepository(db),
		Course:     NewCourseRepository(db),
		Student:    NewStudentRepository(db),
		Attendance: NewAttendanceRepository(db),
		Permission: NewPermissionRepository(db),
		Feedback:   NewFeedbackRepository(db),
	}
}

// courseCond translates a resolved course filter into a predicate on the
// given course-id column. It returns nil when the filter imposes no
// restriction (all-courses scope, no course selected). For a subset
// scope the ANY() predicate naturally drops rows whose course id is
// NULL, so courseless students only surface under the all-courses scope.
func courseCond(f scope.Filter, column string) squirrel.Sqlizer {
	if f.Course != nil {
		return squirrel.Eq{column: f.Course.ID}
	}
	if f.Scope.IsAll() {
		return nil
	}
	return squirrel.Expr(column+" = ANY(?)", f.Scope.CourseIDs())
}
