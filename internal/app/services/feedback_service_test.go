package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

func newFeedbackFixture() (*FeedbackService, *fakeFeedback) {
	students := &fakeStudents{
		students: []*models.StudentProfile{
			{ID: 1, AccountID: 101, CourseID: int64Ptr(1), Names: "Ana", Surnames: "González"},
			{ID: 3, AccountID: 103, CourseID: int64Ptr(2), Names: "Carla", Surnames: "Pineda"},
		},
	}
	feedback := &fakeFeedback{students: map[int64]*models.StudentProfile{
		1: students.students[0],
		3: students.students[1],
	}}
	svc := NewFeedbackService(feedback, students, newTestDirectory())
	return svc, feedback
}

func TestSendFeedback(t *testing.T) {
	svc, store := newFeedbackFixture()

	fb, err := svc.Send(context.Background(), 101, "el aula necesita ventilación")
	require.NoError(t, err)

	require.NotNil(t, fb.StudentID)
	assert.Equal(t, int64(1), *fb.StudentID)
	assert.NotZero(t, fb.ID)
	assert.Len(t, store.messages, 1)
}

func TestSendFeedbackEmptyMessage(t *testing.T) {
	svc, _ := newFeedbackFixture()

	_, err := svc.Send(context.Background(), 101, "   ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSendFeedbackRequiresStudentProfile(t *testing.T) {
	svc, _ := newFeedbackFixture()

	_, err := svc.Send(context.Background(), 999, "mensaje")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotRegistered)
}

func TestListFeedbackHonorsScope(t *testing.T) {
	svc, _ := newFeedbackFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, 101, "del curso uno")
	require.NoError(t, err)
	_, err = svc.Send(ctx, 103, "del curso dos")
	require.NoError(t, err)

	_, visible, err := svc.List(ctx, staff, nil)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "del curso uno", visible[0].Message)

	_, everything, err := svc.List(ctx, superuser, nil)
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestListFeedbackNarrowedToCourse(t *testing.T) {
	svc, _ := newFeedbackFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, 101, "del curso uno")
	require.NoError(t, err)
	_, err = svc.Send(ctx, 103, "del curso dos")
	require.NoError(t, err)

	filter, visible, err := svc.List(ctx, superuser, int64Ptr(2))
	require.NoError(t, err)
	require.NotNil(t, filter.Course)
	require.Len(t, visible, 1)
	assert.Equal(t, "del curso dos", visible[0].Message)
}

func TestListFeedbackOutOfScopeCourse(t *testing.T) {
	svc, _ := newFeedbackFixture()

	_, _, err := svc.List(context.Background(), staff, int64Ptr(2))
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)
}

func TestListFeedbackKeepsAuthorlessMessages(t *testing.T) {
	svc, store := newFeedbackFixture()
	ctx := context.Background()

	// A deleted student leaves the message behind with no author.
	store.Create(ctx, &models.FeedbackMessage{StudentID: nil, Message: "huérfano"})

	_, everything, err := svc.List(ctx, superuser, nil)
	require.NoError(t, err)
	require.Len(t, everything, 1)
	assert.Nil(t, everything[0].StudentID)
}
