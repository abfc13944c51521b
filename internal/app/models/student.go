package models

// StudentProfile defines the student model based on the 'student_profiles' table.
// Every profile is tied one-to-one to an account; deleting either side
// removes the other. The course reference is optional and survives course
// deletion as NULL, so a student can be courseless.
type StudentProfile struct {
	ID        int64   `json:"id" db:"id" example:"1"`                          // Unique identifier for the student record
	AccountID int64   `json:"accountId" db:"account_id" example:"5"`           // ID of the associated login account
	CourseID  *int64  `json:"courseId,omitempty" db:"course_id" example:"3"`   // Enrolled course (nullable)
	Cedula    string  `json:"cedula" db:"cedula" example:"1234567890"`         // National identity number, unique
	Names     string  `json:"names" db:"names" example:"Ana María"`            // Given names
	Surnames  string  `json:"surnames" db:"surnames" example:"González Pérez"` // Family names
	Grade     *string `json:"grade,omitempty" db:"grade" example:"1ro"`        // Optional grade
	Group     *string `json:"group,omitempty" db:"group" example:"A"`          // Optional group
	Phone     string  `json:"phone" db:"phone" example:"+58 412 5551234"`      // Contact phone number

	// Relations (populated when needed)
	Account *Account `json:"account,omitempty"` // Associated account information
	Course  *Course  `json:"course,omitempty"`  // Associated course
}
