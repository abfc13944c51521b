package services

import (
	"context"
	"sort"
	"time"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// In-memory stand-ins for the repositories. They mirror the SQL
// behavior the services rely on: filter predicates over course
// membership, half-open range lookups, and the pending-only status
// transition.

type fakeDirectory struct {
	courses     map[int64]*models.Course
	assignments map[int64][]int64
}

func (d *fakeDirectory) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := d.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (d *fakeDirectory) AssignedCourseIDs(_ context.Context, accountID int64) ([]int64, error) {
	return d.assignments[accountID], nil
}

type fakeStudents struct {
	students []*models.StudentProfile
}

func matchesFilter(f scope.Filter, s *models.StudentProfile) bool {
	if f.Course != nil {
		return s.CourseID != nil && *s.CourseID == f.Course.ID
	}
	return f.Scope.ContainsCourseRef(s.CourseID)
}

func (r *fakeStudents) ListByFilter(_ context.Context, f scope.Filter) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for _, s := range r.students {
		if matchesFilter(f, s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Surnames != out[j].Surnames {
			return out[i].Surnames < out[j].Surnames
		}
		return out[i].Names < out[j].Names
	})
	return out, nil
}

func (r *fakeStudents) CountByFilter(ctx context.Context, f scope.Filter) (int, error) {
	students, err := r.ListByFilter(ctx, f)
	return len(students), err
}

func (r *fakeStudents) ListRecent(_ context.Context, f scope.Filter, limit int) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for i := len(r.students) - 1; i >= 0 && len(out) < limit; i-- {
		if matchesFilter(f, r.students[i]) {
			out = append(out, r.students[i])
		}
	}
	return out, nil
}

func (r *fakeStudents) GetByID(_ context.Context, id int64) (*models.StudentProfile, error) {
	for _, s := range r.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudents) GetByAccountID(_ context.Context, accountID int64) (*models.StudentProfile, error) {
	for _, s := range r.students {
		if s.AccountID == accountID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotRegistered
}

func (r *fakeStudents) CreateWithAccount(_ context.Context, account *models.Account, profile *models.StudentProfile) error {
	account.ID = int64(len(r.students) + 100)
	profile.ID = int64(len(r.students) + 1)
	profile.AccountID = account.ID
	r.students = append(r.students, profile)
	return nil
}

func (r *fakeStudents) Update(_ context.Context, profile *models.StudentProfile) error {
	for i, s := range r.students {
		if s.ID == profile.ID {
			r.students[i] = profile
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

type fakeAccounts struct {
	usernames map[int64]string
	deleted   []int64
}

func (r *fakeAccounts) UpdateUsername(_ context.Context, id int64, username string) error {
	if r.usernames == nil {
		r.usernames = make(map[int64]string)
	}
	r.usernames[id] = username
	return nil
}

func (r *fakeAccounts) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeAttendance struct {
	nextID  int64
	records []*models.AttendanceRecord
}

func inRange(ts, from, to time.Time) bool {
	return !ts.Before(from) && ts.Before(to)
}

func (r *fakeAttendance) FindForStudentInRange(_ context.Context, studentID int64, from, to time.Time) (*models.AttendanceRecord, error) {
	for _, rec := range r.records {
		if rec.StudentID == studentID && inRange(rec.Timestamp, from, to) {
			return rec, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (r *fakeAttendance) Create(_ context.Context, rec *models.AttendanceRecord) error {
	r.nextID++
	rec.ID = r.nextID
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeAttendance) Update(_ context.Context, rec *models.AttendanceRecord) error {
	for i, existing := range r.records {
		if existing.ID == rec.ID {
			r.records[i] = rec
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (r *fakeAttendance) ListForStudentsInRange(_ context.Context, studentIDs []int64, from, to time.Time) ([]*models.AttendanceRecord, error) {
	wanted := make(map[int64]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = struct{}{}
	}
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		if _, ok := wanted[rec.StudentID]; ok && inRange(rec.Timestamp, from, to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendance) ListPresentForStudent(_ context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		if rec.StudentID == studentID && rec.IsPresent {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *fakeAttendance) forStudent(studentID int64) []*models.AttendanceRecord {
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out
}

type fakePermissions struct {
	nextID   int64
	requests map[int64]*models.PermissionRequest
	students map[int64]*models.StudentProfile
}

func (r *fakePermissions) Create(_ context.Context, req *models.PermissionRequest) error {
	if r.requests == nil {
		r.requests = make(map[int64]*models.PermissionRequest)
	}
	r.nextID++
	req.ID = r.nextID
	req.Status = models.PermissionPending
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return nil
}

func (r *fakePermissions) GetByID(_ context.Context, id int64) (*models.PermissionRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrPermissionRequestNotFound
	}
	if req.Student == nil {
		req.Student = r.students[req.StudentID]
	}
	return req, nil
}

func (r *fakePermissions) UpdateStatus(_ context.Context, id int64, status models.PermissionStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrPermissionRequestNotFound
	}
	if req.Status != models.PermissionPending {
		return apperrors.ErrPermissionAlreadyDecided
	}
	req.Status = status
	return nil
}

func (r *fakePermissions) ListByStudent(_ context.Context, studentID int64) ([]*models.PermissionRequest, error) {
	var out []*models.PermissionRequest
	for _, req := range r.requests {
		if req.StudentID == studentID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePermissions) ListByFilter(_ context.Context, f scope.Filter, status *models.PermissionStatus, limit int) ([]*models.PermissionRequest, error) {
	var out []*models.PermissionRequest
	for _, req := range r.requests {
		student := r.students[req.StudentID]
		if student == nil || !matchesFilter(f, student) {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePermissions) CountPendingByFilter(ctx context.Context, f scope.Filter) (int, error) {
	pending := models.PermissionPending
	reqs, err := r.ListByFilter(ctx, f, &pending, 0)
	return len(reqs), err
}

type fakeFeedback struct {
	nextID   int64
	messages []*models.FeedbackMessage
	students map[int64]*models.StudentProfile
}

func (r *fakeFeedback) Create(_ context.Context, fb *models.FeedbackMessage) error {
	r.nextID++
	fb.ID = r.nextID
	fb.CreatedAt = time.Now()
	r.messages = append(r.messages, fb)
	return nil
}

func (r *fakeFeedback) ListByFilter(_ context.Context, f scope.Filter) ([]*models.FeedbackMessage, error) {
	var out []*models.FeedbackMessage
	for _, fb := range r.messages {
		if fb.StudentID == nil {
			// Authorless messages only surface to the all-courses scope.
			if f.Scope.IsAll() && f.Course == nil {
				out = append(out, fb)
			}
			continue
		}
		student := r.students[*fb.StudentID]
		if student != nil && matchesFilter(f, student) {
			out = append(out, fb)
		}
	}
	return out, nil
}

func int64Ptr(v int64) *int64 { return &v }

// newTestDirectory builds the directory used across the service tests:
// two courses, staff account 10 assigned to course 1 only.
func newTestDirectory() *fakeDirectory {
	return &fakeDirectory{
		courses: map[int64]*models.Course{
			1: {ID: 1, Name: "Matemáticas 101", Code: "MAT101"},
			2: {ID: 2, Name: "Historia 303", Code: "HIS303"},
		},
		assignments: map[int64][]int64{
			10: {1},
		},
	}
}

var (
	superuser = &models.Account{ID: 99, Username: "admin", IsStaff: true, IsSuperuser: true}
	staff     = &models.Account{ID: 10, Username: "profe", IsStaff: true}
)
