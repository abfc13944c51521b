package dto

import "github.com/drivera/aulanet/internal/app/models"

// CreateStudentRequest represents an administrator creating a student
type CreateStudentRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	CourseID *int64  `json:"courseId,omitempty"`
	Cedula   string  `json:"cedula" binding:"required"`
	Names    string  `json:"names" binding:"required"`
	Surnames string  `json:"surnames" binding:"required"`
	Grade    *string `json:"grade,omitempty"`
	Group    *string `json:"group,omitempty"`
	Phone    string  `json:"phone"`
}

// UpdateStudentRequest represents an administrator editing a student.
// An empty username leaves the login name unchanged.
type UpdateStudentRequest struct {
	Username string  `json:"username,omitempty"`
	CourseID *int64  `json:"courseId,omitempty"`
	Cedula   string  `json:"cedula" binding:"required"`
	Names    string  `json:"names" binding:"required"`
	Surnames string  `json:"surnames" binding:"required"`
	Grade    *string `json:"grade,omitempty"`
	Group    *string `json:"group,omitempty"`
	Phone    string  `json:"phone"`
}

// StudentResponse represents student profile information
type StudentResponse struct {
	ID       int64           `json:"id" example:"1"`
	Username string          `json:"username,omitempty" example:"agonzalez"`
	Cedula   string          `json:"cedula" example:"1234567890"`
	Names    string          `json:"names" example:"Ana María"`
	Surnames string          `json:"surnames" example:"González Pérez"`
	Grade    *string         `json:"grade,omitempty" example:"1ro"`
	Group    *string         `json:"group,omitempty" example:"A"`
	Phone    string          `json:"phone,omitempty"`
	Course   *CourseResponse `json:"course,omitempty"`
}

// StudentListResponse pairs a student listing with the filter applied
type StudentListResponse struct {
	Filter   FilterInfo         `json:"filter"`
	Students []*StudentResponse `json:"students"`
}

// NewStudentResponse maps a student profile to its response form
func NewStudentResponse(s *models.StudentProfile) *StudentResponse {
	if s == nil {
		return nil
	}
	resp := &StudentResponse{
		ID:       s.ID,
		Cedula:   s.Cedula,
		Names:    s.Names,
		Surnames: s.Surnames,
		Grade:    s.Grade,
		Group:    s.Group,
		Phone:    s.Phone,
		Course:   NewCourseResponse(s.Course),
	}
	if s.Account != nil {
		resp.Username = s.Account.Username
	}
	return resp
}

// NewStudentResponseList maps a slice of student profiles
func NewStudentResponseList(students []*models.StudentProfile) []*StudentResponse {
	out := make([]*StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
