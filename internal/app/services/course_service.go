package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/events"
	"github.com/yigit/coursetracker/internal/pkg/validation"
)

// NewCourse holds the data of a course to create
type NewCourse struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Credit          int     `json:"credit"`
	PrerequisiteIDs []int64 `json:"prerequisiteIds"`
}

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]models.CourseWithPrerequisites, error)
	ListCourseOptions(ctx context.Context) ([]models.CourseOption, error)
	CreateCourse(ctx context.Context, course NewCourse) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.CourseRepositoryInterface
	tx         Transactor
	publisher  events.Publisher
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepositoryInterface, tx Transactor, publisher events.Publisher) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		tx:         tx,
		publisher:  publisher,
	}
}

// ListCourses returns every course with its prerequisites
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.CourseWithPrerequisites, error) {
	return s.courseRepo.All(ctx)
}

// ListCourseOptions returns the course labels used by the selection forms
func (s *courseServiceImpl) ListCourseOptions(ctx context.Context) ([]models.CourseOption, error) {
	return s.courseRepo.Options(ctx)
}

func validateCourse(course *NewCourse) error {
	course.Code = strings.TrimSpace(course.Code)
	course.Name = strings.TrimSpace(course.Name)

	if course.Code == "" || course.Name == "" {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}
	if !validation.IsValidCourseCode(course.Code) {
		return apperrors.NewValidationError(fmt.Sprintf("%s is not a valid course code", course.Code))
	}
	if !validation.IsValidCourseName(course.Name) {
		return apperrors.NewValidationError("Course name is too long")
	}
	if course.Credit < 0 {
		return apperrors.NewValidationError("Course credit cannot be negative")
	}
	for _, id := range course.PrerequisiteIDs {
		if id <= 0 {
			return apperrors.NewValidationError("Prerequisite course ids must be positive")
		}
	}
	return nil
}

// CreateCourse adds a course and its prerequisites in one transaction.
// A course whose code is taken is rejected before anything is written.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course NewCourse) error {
	if err := validateCourse(&course); err != nil {
		return err
	}

	duplicate := fmt.Sprintf("A class with code %s already exists", course.Code)

	existing, err := s.courseRepo.Get(ctx, course.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewAlreadyExistsError(apperrors.ErrCourseAlreadyExists, duplicate)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.courseRepo.Create(ctx, course.Code, course.Name, course.Credit); err != nil {
			return err
		}
		for _, prerequisiteID := range course.PrerequisiteIDs {
			if err := s.courseRepo.AddPrerequisite(ctx, course.Code, prerequisiteID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = describe(err, apperrors.ErrCourseAlreadyExists, duplicate)
		err = describe(err, apperrors.ErrPrerequisiteExists, "A prerequisite was listed more than once")
		return describe(err, apperrors.ErrInvalidReference, "One or more prerequisite courses do not exist")
	}

	publish(ctx, s.publisher, events.New(events.CourseCreated, course.Code, course))
	return nil
}
