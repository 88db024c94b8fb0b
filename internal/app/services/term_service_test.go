package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/events"
)

func TestCreateTerm_NormalizesAndAddsCourses(t *testing.T) {
	repo := new(MockTermRepository)
	pub := &recordingPublisher{}
	svc := NewTermService(repo, inlineTx{}, pub)
	ctx := context.Background()

	name := models.TermName{Season: "Fall", Year: 2024}
	repo.On("Get", ctx, "Fall", 2024).Return(nil, nil)
	repo.On("Create", ctx, "Fall", 2024, "2024-09-25", "2024-12-13").Return(nil)
	repo.On("AddCourse", ctx, name, int64(1)).Return(nil)
	repo.On("AddCourse", ctx, name, int64(2)).Return(nil)

	err := svc.CreateTerm(ctx, NewTerm{
		Season:    "fall",
		Year:      2024,
		StartDate: "2024-09-25",
		EndDate:   "2024-12-13",
		CourseIDs: []int64{1, 2},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TermCreated, pub.events[0].Type)
	assert.Equal(t, "Fall 2024", pub.events[0].Key)
}

func TestCreateTerm_Duplicate(t *testing.T) {
	repo := new(MockTermRepository)
	svc := NewTermService(repo, inlineTx{}, events.NewNoopPublisher())
	ctx := context.Background()

	repo.On("Get", ctx, "Winter", 2025).Return(&models.Term{ID: 3, Name: "Winter 2025"}, nil)

	err := svc.CreateTerm(ctx, NewTerm{Season: "Winter", Year: 2025, StartDate: "2025-01-06", EndDate: "2025-03-21"})

	assert.ErrorIs(t, err, apperrors.ErrTermAlreadyExists)
	assert.EqualError(t, err, "A term with the name of Winter 2025 already exists")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTerm_Validation(t *testing.T) {
	repo := new(MockTermRepository)
	svc := NewTermService(repo, inlineTx{}, events.NewNoopPublisher())

	tests := []struct {
		name string
		term NewTerm
		msg  string
	}{
		{"missing season", NewTerm{Year: 2024, StartDate: "2024-01-01", EndDate: "2024-02-01"}, apperrors.MsgMissingAttributes},
		{"unknown season", NewTerm{Season: "Autumn", Year: 2024, StartDate: "2024-01-01", EndDate: "2024-02-01"}, "Autumn is not a valid season"},
		{"year out of range", NewTerm{Season: "Fall", Year: 12, StartDate: "2024-01-01", EndDate: "2024-02-01"}, "12 is not a valid term year"},
		{"bad start date", NewTerm{Season: "Fall", Year: 2024, StartDate: "01/01/2024", EndDate: "2024-02-01"}, "Term start date must be formatted as YYYY-MM-DD"},
		{"end before start", NewTerm{Season: "Fall", Year: 2024, StartDate: "2024-02-01", EndDate: "2024-01-01"}, "Term end date cannot be before its start date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateTerm(context.Background(), tt.term)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.EqualError(t, err, tt.msg)
		})
	}
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddTermCourse(t *testing.T) {
	repo := new(MockTermRepository)
	pub := &recordingPublisher{}
	svc := NewTermService(repo, inlineTx{}, pub)
	ctx := context.Background()

	repo.On("AddCourse", ctx, models.TermID(1), int64(2)).Return(nil).Once()
	repo.On("AddCourse", ctx, models.TermID(1), int64(2)).Return(apperrors.ErrTermCourseExists).Once()
	repo.On("AddCourse", ctx, models.TermID(9), int64(2)).Return(apperrors.ErrInvalidReference)

	require.NoError(t, svc.AddTermCourse(ctx, 1, 2))

	err := svc.AddTermCourse(ctx, 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.EqualError(t, err, "The course is already offered in this term")

	err = svc.AddTermCourse(ctx, 9, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	err = svc.AddTermCourse(ctx, 0, 2)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Equal(t, []string{events.TermCourseAdded}, pub.types())
}
