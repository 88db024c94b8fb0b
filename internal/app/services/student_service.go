package services

import (
	"context"
	"strings"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/events"
	"github.com/yigit/coursetracker/internal/pkg/validation"
)

const msgStudentNotFound = "No student exists for the provided student id."

// NewStudent holds the data of a student to create
type NewStudent struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListStudentOptions(ctx context.Context) ([]models.StudentOption, error)
	GetStudent(ctx context.Context, studentID string) (*models.Student, error)
	CreateStudent(ctx context.Context, student NewStudent) error
	UpdateStudent(ctx context.Context, studentID, firstName, lastName string) error
	DeleteStudent(ctx context.Context, studentID string) error
}

type studentServiceImpl struct {
	studentRepo repositories.StudentRepositoryInterface
	publisher   events.Publisher
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepositoryInterface, publisher events.Publisher) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		publisher:   publisher,
	}
}

func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.studentRepo.All(ctx)
}

func (s *studentServiceImpl) ListStudentOptions(ctx context.Context) ([]models.StudentOption, error) {
	return s.studentRepo.AllFormatted(ctx)
}

// GetStudent returns a student or a not found error
func (s *studentServiceImpl) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.studentRepo.Get(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ErrStudentNotFound, msgStudentNotFound)
	}
	return student, nil
}

func validateNames(firstName, lastName string) error {
	if firstName == "" || lastName == "" {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}
	if !validation.IsValidName(firstName) || !validation.IsValidName(lastName) {
		return apperrors.NewValidationError("Student names cannot be longer than 100 characters")
	}
	return nil
}

// CreateStudent adds a student unless the id is already taken
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student NewStudent) error {
	student.ID = strings.TrimSpace(student.ID)
	student.FirstName = strings.TrimSpace(student.FirstName)
	student.LastName = strings.TrimSpace(student.LastName)

	if student.ID == "" {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}
	if err := validateNames(student.FirstName, student.LastName); err != nil {
		return err
	}
	if !validation.IsValidStudentID(student.ID) {
		return apperrors.NewValidationError("Student id must be letters and digits only")
	}

	const duplicate = "A student already exists for the provided student id."

	existing, err := s.studentRepo.Get(ctx, student.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewAlreadyExistsError(apperrors.ErrStudentIDAlreadyExists, duplicate)
	}

	if err := s.studentRepo.Create(ctx, student.ID, student.FirstName, student.LastName); err != nil {
		return describe(err, apperrors.ErrStudentIDAlreadyExists, duplicate)
	}

	publish(ctx, s.publisher, events.New(events.StudentCreated, student.ID, student))
	return nil
}

// UpdateStudent renames a student
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, studentID, firstName, lastName string) error {
	studentID = strings.TrimSpace(studentID)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if studentID == "" {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}
	if err := validateNames(firstName, lastName); err != nil {
		return err
	}

	if err := s.studentRepo.Update(ctx, firstName, lastName, studentID); err != nil {
		return describe(err, apperrors.ErrStudentNotFound, msgStudentNotFound)
	}

	publish(ctx, s.publisher, events.New(events.StudentUpdated, studentID, NewStudent{
		ID:        studentID,
		FirstName: firstName,
		LastName:  lastName,
	}))
	return nil
}

// DeleteStudent removes a student and, through the schema, the student's plans
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, studentID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return describe(err, apperrors.ErrStudentNotFound, msgStudentNotFound)
	}

	publish(ctx, s.publisher, events.New(events.StudentDeleted, studentID, nil))
	return nil
}
