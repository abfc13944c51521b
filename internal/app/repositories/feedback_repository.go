package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
)

// FeedbackRepository handles feedback message database operations
type FeedbackRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new feedback message
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.FeedbackMessage) error {
	query := `
		INSERT INTO feedback_messages (student_id, message)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, fb.StudentID, fb.Message).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating feedback: %w", err)
	}

	return nil
}

// ListByFilter retrieves the feedback visible through the course filter,
// newest first. Under the all-courses scope the left join also surfaces
// messages whose author was deleted (NULL student reference); a subset
// scope only sees messages from students in its courses.
func (r *FeedbackRepository) ListByFilter(ctx context.Context, f scope.Filter) ([]*models.FeedbackMessage, error) {
	builder := r.sb.Select(
		"fb.id", "fb.student_id", "fb.message", "fb.created_at",
		"s.names", "s.surnames", "s.course_id",
	).
		From("feedback_messages fb").
		LeftJoin("student_profiles s ON s.id = fb.student_id").
		OrderBy("fb.created_at DESC")
	if cond := courseCond(f, "s.course_id"); cond != nil {
		builder = builder.Where(cond)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.FeedbackMessage
	for rows.Next() {
		var (
			fb       models.FeedbackMessage
			names    *string
			surnames *string
			courseID *int64
		)
		err := rows.Scan(&fb.ID, &fb.StudentID, &fb.Message, &fb.CreatedAt,
			&names, &surnames, &courseID)
		if err != nil {
			return nil, err
		}
		if fb.StudentID != nil && names != nil {
			fb.Student = &models.StudentProfile{
				ID:       *fb.StudentID,
				CourseID: courseID,
				Names:    *names,
				Surnames: *surnames,
			}
		}
		messages = append(messages, &fb)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
