package models

import "time"

// FeedbackMessage defines the feedback model based on the
// 'feedback_messages' table. The student reference is nulled when the
// student is deleted; the message itself survives.
type FeedbackMessage struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	StudentID *int64    `json:"studentId,omitempty" db:"student_id" example:"7"` // Author (nullable after student deletion)
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Immutable, set at creation

	// Relations (populated when needed)
	Student *StudentProfile `json:"student,omitempty"`
}
