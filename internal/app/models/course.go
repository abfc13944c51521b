package models

// Course represents a course in the system.
// Identity is immutable once created; the code is unique across the system.
type Course struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	Name        string  `json:"name" db:"name" example:"Matemáticas 101"`
	Code        string  `json:"code" db:"code" example:"MAT101"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
}
