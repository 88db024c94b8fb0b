package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/db"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
)

// StudentRepositoryInterface defines the student operations used by the services
type StudentRepositoryInterface interface {
	All(ctx context.Context) ([]models.Student, error)
	AllFormatted(ctx context.Context) ([]models.StudentOption, error)
	Get(ctx context.Context, studentID string) (*models.Student, error)
	Create(ctx context.Context, studentID, firstName, lastName string) error
	Update(ctx context.Context, firstName, lastName, studentID string) error
	Delete(ctx context.Context, studentID string) error
}

var _ StudentRepositoryInterface = (*StudentRepository)(nil)

// StudentRepository handles database operations for students
type StudentRepository struct {
	exec *db.Executor
	sb   squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(exec *db.Executor) *StudentRepository {
	return &StudentRepository{
		exec: exec,
		sb:   exec.Builder(),
	}
}

func scanStudent(row db.Scanner, s *models.Student) error {
	return row.Scan(&s.ID, &s.FirstName, &s.LastName)
}

// All lists students ordered by last name
func (r *StudentRepository) All(ctx context.Context) ([]models.Student, error) {
	query := r.sb.Select("studentID", "firstName", "lastName").
		From("Students").
		OrderBy("lastName ASC", "studentID ASC")

	students := []models.Student{}
	_, err := perform(ctx, r.exec, query, db.ReadMany, func(row db.Scanner) error {
		var s models.Student
		if err := scanStudent(row, &s); err != nil {
			return err
		}
		students = append(students, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return students, nil
}

// AllFormatted lists students as "Last, First - ID" labels ordered by last name
func (r *StudentRepository) AllFormatted(ctx context.Context) ([]models.StudentOption, error) {
	label := r.exec.Dialect().Concat("lastName", "', '", "firstName", "' - '", "studentID")
	query := r.sb.Select(label+" AS student", "studentID").
		From("Students").
		OrderBy("lastName ASC", "studentID ASC")

	options := []models.StudentOption{}
	_, err := perform(ctx, r.exec, query, db.ReadMany, func(row db.Scanner) error {
		var o models.StudentOption
		if err := row.Scan(&o.Student, &o.StudentID); err != nil {
			return err
		}
		options = append(options, o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return options, nil
}

// Get returns the student with the given id, or nil when there is none
func (r *StudentRepository) Get(ctx context.Context, studentID string) (*models.Student, error) {
	query := r.sb.Select("studentID", "firstName", "lastName").
		From("Students").
		Where(squirrel.Eq{"studentID": studentID})

	var student models.Student
	res, err := perform(ctx, r.exec, query, db.ReadOne, func(row db.Scanner) error {
		return scanStudent(row, &student)
	})
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}

	return &student, nil
}

// Create inserts a student
func (r *StudentRepository) Create(ctx context.Context, studentID, firstName, lastName string) error {
	query := r.sb.Insert("Students").
		Columns("studentID", "firstName", "lastName").
		Values(studentID, firstName, lastName)

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{duplicate: apperrors.ErrStudentIDAlreadyExists}.refine(err)
}

// Update renames a student
func (r *StudentRepository) Update(ctx context.Context, firstName, lastName, studentID string) error {
	query := r.sb.Update("Students").
		Set("firstName", firstName).
		Set("lastName", lastName).
		Where(squirrel.Eq{"studentID": studentID})

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{notFound: apperrors.ErrStudentNotFound}.refine(err)
}

// Delete removes a student together with the student's plans
func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	query := r.sb.Delete("Students").
		Where(squirrel.Eq{"studentID": studentID})

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{notFound: apperrors.ErrStudentNotFound}.refine(err)
}
