package dto

import "github.com/drivera/aulanet/internal/app/models"

// CreateCourseRequest represents the payload for adding a course
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// AssignAdministratorRequest represents the payload for granting a
// staff account administration of a course
type AssignAdministratorRequest struct {
	AccountID int64 `json:"accountId" binding:"required" example:"5"`
}

// CourseResponse represents course information
type CourseResponse struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"name" example:"Matemáticas 101"`
	Code        string  `json:"code" example:"MAT101"`
	Description *string `json:"description,omitempty"`
}

// NewCourseResponse maps a course model to its response form
func NewCourseResponse(c *models.Course) *CourseResponse {
	if c == nil {
		return nil
	}
	return &CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
	}
}

// NewCourseResponseList maps a slice of courses
func NewCourseResponseList(courses []*models.Course) []*CourseResponse {
	out := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
