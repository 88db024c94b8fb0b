package repositories

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/db"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/helpers"
)

// CourseRepositoryInterface defines the course operations used by the services
type CourseRepositoryInterface interface {
	All(ctx context.Context) ([]models.CourseWithPrerequisites, error)
	Options(ctx context.Context) ([]models.CourseOption, error)
	Get(ctx context.Context, code string) (*models.Course, error)
	Create(ctx context.Context, code, name string, credit int) error
	AddPrerequisite(ctx context.Context, code string, prerequisiteID int64) error
}

var _ CourseRepositoryInterface = (*CourseRepository)(nil)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	exec *db.Executor
	sb   squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(exec *db.Executor) *CourseRepository {
	return &CourseRepository{
		exec: exec,
		sb:   exec.Builder(),
	}
}

// All lists every course with its prerequisites, ordered by code
func (r *CourseRepository) All(ctx context.Context) ([]models.CourseWithPrerequisites, error) {
	d := r.exec.Dialect()
	query := r.sb.Select(
		"c.courseID",
		nameOf(d, "c.code", "c.name")+" AS course",
		"c.credit",
		d.StringAgg(nameOf(d, "pc.code", "pc.name"), "pc.code")+" AS prerequisites",
	).
		From("Courses c").
		LeftJoin("Courses_has_Prerequisites p ON c.courseID = p.courseID").
		LeftJoin("Courses pc ON p.prerequisiteID = pc.courseID").
		GroupBy("c.courseID", "c.code", "c.name", "c.credit").
		OrderBy("c.code ASC")

	courses := []models.CourseWithPrerequisites{}
	_, err := perform(ctx, r.exec, query, db.ReadMany, func(row db.Scanner) error {
		var (
			c             models.CourseWithPrerequisites
			prerequisites sql.NullString
		)
		if err := row.Scan(&c.ID, &c.Course, &c.Credit, &prerequisites); err != nil {
			return err
		}
		c.Prerequisites = helpers.NullStringValue(prerequisites)
		courses = append(courses, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return courses, nil
}

// Options lists every course as a "CODE NAME" label and id, ordered by code
func (r *CourseRepository) Options(ctx context.Context) ([]models.CourseOption, error) {
	query := r.sb.Select(nameOf(r.exec.Dialect(), "code", "name")+" AS course", "courseID").
		From("Courses").
		OrderBy("code ASC")

	options := []models.CourseOption{}
	_, err := perform(ctx, r.exec, query, db.ReadMany, func(row db.Scanner) error {
		var o models.CourseOption
		if err := row.Scan(&o.Course, &o.ID); err != nil {
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

// Get returns the course with the given code, or nil when there is none
func (r *CourseRepository) Get(ctx context.Context, code string) (*models.Course, error) {
	query := r.sb.Select("courseID", "code", "name", "credit").
		From("Courses").
		Where(squirrel.Eq{"code": code})

	var course models.Course
	res, err := perform(ctx, r.exec, query, db.ReadOne, func(row db.Scanner) error {
		return row.Scan(&course.ID, &course.Code, &course.Name, &course.Credit)
	})
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}

	return &course, nil
}

// Create inserts a course
func (r *CourseRepository) Create(ctx context.Context, code, name string, credit int) error {
	query := r.sb.Insert("Courses").
		Columns("code", "name", "credit").
		Values(code, name, credit)

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{duplicate: apperrors.ErrCourseAlreadyExists}.refine(err)
}

// AddPrerequisite links prerequisiteID as a prerequisite of the course with the given code
func (r *CourseRepository) AddPrerequisite(ctx context.Context, code string, prerequisiteID int64) error {
	query := r.sb.Insert("Courses_has_Prerequisites").
		Columns("courseID", "prerequisiteID").
		Values(squirrel.Expr("(SELECT courseID FROM Courses WHERE code = ?)", code), prerequisiteID)

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{duplicate: apperrors.ErrPrerequisiteExists}.refine(err)
}
