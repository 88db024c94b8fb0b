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

// StudentTermPlanRepositoryInterface defines the plan operations used by the services
type StudentTermPlanRepositoryInterface interface {
	All(ctx context.Context) ([]models.StudentTermPlan, error)
	Get(ctx context.Context, studentID string, termID int64) (int64, bool, error)
	Create(ctx context.Context, studentID string, termID int64, advisorApproved bool) error
	AddCourses(ctx context.Context, courseIDs []int64, plan models.PlanRef) error
	UpdateCourse(ctx context.Context, newCourseID, planID, courseID int64) error
	RemoveCourse(ctx context.Context, planID, courseID int64) error
	UpdateApproval(ctx context.Context, planID int64, advisorApproved bool) error
	Delete(ctx context.Context, planID int64) error
}

var _ StudentTermPlanRepositoryInterface = (*StudentTermPlanRepository)(nil)

const planCoursesTable = "StudentTermPlans_has_Courses"

// StudentTermPlanRepository handles database operations for student term plans
type StudentTermPlanRepository struct {
	exec *db.Executor
	sb   squirrel.StatementBuilderType
}

// NewStudentTermPlanRepository creates a new StudentTermPlanRepository
func NewStudentTermPlanRepository(exec *db.Executor) *StudentTermPlanRepository {
	return &StudentTermPlanRepository{
		exec: exec,
		sb:   exec.Builder(),
	}
}

// All lists every plan with student name, term name and selected courses,
// ordered by plan id. Plans without selections are included.
func (r *StudentTermPlanRepository) All(ctx context.Context) ([]models.StudentTermPlan, error) {
	d := r.exec.Dialect()
	query := r.sb.Select(
		"stp.studentTermPlanID",
		"stp.studentID",
		nameOf(d, "s.firstName", "s.lastName")+" AS studentName",
		"t.name AS termName",
		d.StringAgg(nameOf(d, "c.code", "c.name"), "stpc.courseID")+" AS courses",
		"stp.advisorApproved",
	).
		From("StudentTermPlans stp").
		InnerJoin("Terms t ON stp.termID = t.termID").
		InnerJoin("Students s ON s.studentID = stp.studentID").
		LeftJoin(planCoursesTable + " stpc ON stp.studentTermPlanID = stpc.studentTermPlanID").
		LeftJoin("Courses c ON c.courseID = stpc.courseID").
		GroupBy("stp.studentTermPlanID", "stp.studentID", "s.firstName", "s.lastName", "t.name", "stp.advisorApproved").
		OrderBy("stp.studentTermPlanID ASC")

	plans := []models.StudentTermPlan{}
	_, err := perform(ctx, r.exec, query, db.ReadMany, func(row db.Scanner) error {
		var (
			p        models.StudentTermPlan
			courses  sql.NullString
			approved int64
		)
		if err := row.Scan(&p.StudentTermPlanID, &p.StudentID, &p.StudentName, &p.TermName, &courses, &approved); err != nil {
			return err
		}
		p.Courses = helpers.NullStringValue(courses)
		p.AdvisorApproved = approved == 1
		plans = append(plans, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return plans, nil
}

// Get returns the id of the plan a student has for a term
func (r *StudentTermPlanRepository) Get(ctx context.Context, studentID string, termID int64) (int64, bool, error) {
	query := r.sb.Select("studentTermPlanID").
		From("StudentTermPlans").
		Where(squirrel.Eq{"studentID": studentID, "termID": termID})

	var id int64
	res, err := perform(ctx, r.exec, query, db.ReadOne, func(row db.Scanner) error {
		return row.Scan(&id)
	})
	if err != nil {
		return 0, false, err
	}

	return id, res.Found, nil
}

// Create inserts a plan for a student and term
func (r *StudentTermPlanRepository) Create(ctx context.Context, studentID string, termID int64, advisorApproved bool) error {
	query := r.sb.Insert("StudentTermPlans").
		Columns("studentID", "termID", "advisorApproved").
		Values(studentID, termID, helpers.BoolToInt(advisorApproved))

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{duplicate: apperrors.ErrPlanAlreadyExists}.refine(err)
}

// AddCourses inserts one selection per course id into the plan addressed by
// id or by (student, term). It stops at the first failing course.
func (r *StudentTermPlanRepository) AddCourses(ctx context.Context, courseIDs []int64, plan models.PlanRef) error {
	var planValue interface{}
	switch ref := plan.(type) {
	case models.PlanID:
		planValue = int64(ref)
	case models.PlanKey:
		planValue = squirrel.Expr(
			"(SELECT studentTermPlanID FROM StudentTermPlans WHERE studentID = ? AND termID = ?)",
			ref.StudentID, ref.TermID,
		)
	default:
		return apperrors.NewValidationError("neither a student term plan id or student id/term id was provided")
	}

	for _, courseID := range courseIDs {
		query := r.sb.Insert(planCoursesTable).
			Columns("studentTermPlanID", "courseID").
			Values(planValue, courseID)

		if _, err := perform(ctx, r.exec, query, db.Write, nil); err != nil {
			return writeErrors{duplicate: apperrors.ErrPlanCourseExists}.refine(err)
		}
	}

	return nil
}

// UpdateCourse swaps the selection of courseID in a plan for newCourseID
func (r *StudentTermPlanRepository) UpdateCourse(ctx context.Context, newCourseID, planID, courseID int64) error {
	query := r.sb.Update(planCoursesTable).
		Set("courseID", newCourseID).
		Where(squirrel.Eq{"studentTermPlanID": planID, "courseID": courseID})

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{
		notFound:  apperrors.ErrPlanCourseNotFound,
		duplicate: apperrors.ErrPlanCourseExists,
	}.refine(err)
}

// RemoveCourse deletes the selection of courseID from a plan
func (r *StudentTermPlanRepository) RemoveCourse(ctx context.Context, planID, courseID int64) error {
	query := r.sb.Delete(planCoursesTable).
		Where(squirrel.Eq{"studentTermPlanID": planID, "courseID": courseID})

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{notFound: apperrors.ErrPlanCourseNotFound}.refine(err)
}

// UpdateApproval sets the advisor approval flag of a plan
func (r *StudentTermPlanRepository) UpdateApproval(ctx context.Context, planID int64, advisorApproved bool) error {
	query := r.sb.Update("StudentTermPlans").
		Set("advisorApproved", helpers.BoolToInt(advisorApproved)).
		Where(squirrel.Eq{"studentTermPlanID": planID})

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{notFound: apperrors.ErrPlanNotFound}.refine(err)
}

// Delete removes a plan and its course selections
func (r *StudentTermPlanRepository) Delete(ctx context.Context, planID int64) error {
	query := r.sb.Delete("StudentTermPlans").
		Where(squirrel.Eq{"studentTermPlanID": planID})

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{notFound: apperrors.ErrPlanNotFound}.refine(err)
}
