package dto

import "github.com/drivera/aulanet/internal/app/scope"

// FilterInfo echoes the course narrowing applied to a listing so the
// client can render the active selection and any fallback notice.
type FilterInfo struct {
	SelectedCourseID *int64 `json:"selectedCourseId,omitempty" example:"3"`
	Notice           string `json:"notice,omitempty" example:"the selected course is not valid"`
}

// NewFilterInfo maps an applied course filter to its response form
func NewFilterInfo(f scope.Filter) FilterInfo {
	return FilterInfo{
		SelectedCourseID: f.SelectedCourseID(),
		Notice:           f.Notice,
	}
}
