package services

import (
	"context"
	"fmt"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/events"
	"github.com/yigit/coursetracker/internal/pkg/helpers"
	"github.com/yigit/coursetracker/internal/pkg/validation"
)

// NewTerm holds the data of a term to create
type NewTerm struct {
	Season    string  `json:"season"`
	Year      int     `json:"year"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	CourseIDs []int64 `json:"courseIds"`
}

// TermService defines the interface for term-related operations
type TermService interface {
	ListTerms(ctx context.Context) ([]models.Term, error)
	CreateTerm(ctx context.Context, term NewTerm) error
	AddTermCourse(ctx context.Context, termID, courseID int64) error
}

type termServiceImpl struct {
	termRepo  repositories.TermRepositoryInterface
	tx        Transactor
	publisher events.Publisher
}

// NewTermService creates a new term service instance
func NewTermService(termRepo repositories.TermRepositoryInterface, tx Transactor, publisher events.Publisher) TermService {
	return &termServiceImpl{
		termRepo:  termRepo,
		tx:        tx,
		publisher: publisher,
	}
}

// ListTerms returns every term with its offered courses
func (s *termServiceImpl) ListTerms(ctx context.Context) ([]models.Term, error) {
	return s.termRepo.All(ctx)
}

func validateTerm(term *NewTerm) error {
	if term.Season == "" || term.StartDate == "" || term.EndDate == "" {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	season, ok := validation.NormalizeSeason(term.Season)
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("%s is not a valid season", term.Season))
	}
	term.Season = season

	if !validation.IsValidTermYear(term.Year) {
		return apperrors.NewValidationError(fmt.Sprintf("%d is not a valid term year", term.Year))
	}

	start, err := helpers.ParseDate(term.StartDate)
	if err != nil {
		return apperrors.NewValidationError("Term start date must be formatted as YYYY-MM-DD")
	}
	end, err := helpers.ParseDate(term.EndDate)
	if err != nil {
		return apperrors.NewValidationError("Term end date must be formatted as YYYY-MM-DD")
	}
	if end.Before(start) {
		return apperrors.NewValidationError("Term end date cannot be before its start date")
	}
	term.StartDate, term.EndDate = start.Format(helpers.DateLayout), end.Format(helpers.DateLayout)

	return nil
}

// CreateTerm adds a term and the courses it offers in one transaction
func (s *termServiceImpl) CreateTerm(ctx context.Context, term NewTerm) error {
	if err := validateTerm(&term); err != nil {
		return err
	}

	name := models.TermName{Season: term.Season, Year: term.Year}
	duplicate := fmt.Sprintf("A term with the name of %s already exists", name)

	existing, err := s.termRepo.Get(ctx, term.Season, term.Year)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewAlreadyExistsError(apperrors.ErrTermAlreadyExists, duplicate)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.termRepo.Create(ctx, term.Season, term.Year, term.StartDate, term.EndDate); err != nil {
			return err
		}
		for _, courseID := range term.CourseIDs {
			if err := s.termRepo.AddCourse(ctx, name, courseID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = describe(err, apperrors.ErrTermAlreadyExists, duplicate)
		err = describe(err, apperrors.ErrTermCourseExists, "A course was listed more than once")
		return describe(err, apperrors.ErrInvalidReference, "One or more courses do not exist")
	}

	publish(ctx, s.publisher, events.New(events.TermCreated, name.String(), term))
	return nil
}

// AddTermCourse offers one more course in an existing term
func (s *termServiceImpl) AddTermCourse(ctx context.Context, termID, courseID int64) error {
	if termID <= 0 || courseID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	err := s.termRepo.AddCourse(ctx, models.TermID(termID), courseID)
	if err != nil {
		err = describe(err, apperrors.ErrTermCourseExists, "The course is already offered in this term")
		return describe(err, apperrors.ErrInvalidReference, "The term or course does not exist")
	}

	publish(ctx, s.publisher, events.New(events.TermCourseAdded, fmt.Sprint(termID), map[string]int64{
		"termId":   termID,
		"courseId": courseID,
	}))
	return nil
}
