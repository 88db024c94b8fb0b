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

// TermRepositoryInterface defines the term operations used by the services
type TermRepositoryInterface interface {
	All(ctx context.Context) ([]models.Term, error)
	Get(ctx context.Context, season string, year int) (*models.Term, error)
	Create(ctx context.Context, season string, year int, startDate, endDate string) error
	AddCourse(ctx context.Context, term models.TermRef, courseID int64) error
}

var _ TermRepositoryInterface = (*TermRepository)(nil)

// TermRepository handles database operations for terms
type TermRepository struct {
	exec *db.Executor
	sb   squirrel.StatementBuilderType
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(exec *db.Executor) *TermRepository {
	return &TermRepository{
		exec: exec,
		sb:   exec.Builder(),
	}
}

// All lists every term with its offered courses, ordered by start date
func (r *TermRepository) All(ctx context.Context) ([]models.Term, error) {
	d := r.exec.Dialect()
	query := r.sb.Select(
		"t.termID",
		"t.name",
		"t.startDate",
		"t.endDate",
		d.StringAgg(nameOf(d, "c.code", "c.name"), "c.courseID")+" AS courses",
	).
		From("Terms t").
		LeftJoin("Terms_has_Courses thc ON t.termID = thc.termID").
		LeftJoin("Courses c ON thc.courseID = c.courseID").
		GroupBy("t.termID", "t.name", "t.startDate", "t.endDate").
		OrderBy("t.startDate ASC", "t.termID ASC")

	terms := []models.Term{}
	_, err := perform(ctx, r.exec, query, db.ReadMany, func(row db.Scanner) error {
		var (
			t          models.Term
			start, end helpers.Date
			courses    sql.NullString
		)
		if err := row.Scan(&t.ID, &t.Name, &start, &end, &courses); err != nil {
			return err
		}
		t.StartDate, t.EndDate = string(start), string(end)
		t.Courses = helpers.NullStringValue(courses)
		terms = append(terms, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return terms, nil
}

// Get returns the term named "<season> <year>", or nil when there is none
func (r *TermRepository) Get(ctx context.Context, season string, year int) (*models.Term, error) {
	query := r.sb.Select("termID", "name", "startDate", "endDate").
		From("Terms").
		Where(squirrel.Eq{"name": models.TermName{Season: season, Year: year}.String()})

	var (
		term       models.Term
		start, end helpers.Date
	)
	res, err := perform(ctx, r.exec, query, db.ReadOne, func(row db.Scanner) error {
		return row.Scan(&term.ID, &term.Name, &start, &end)
	})
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}

	term.StartDate, term.EndDate = string(start), string(end)
	return &term, nil
}

// Create inserts a term named "<season> <year>"
func (r *TermRepository) Create(ctx context.Context, season string, year int, startDate, endDate string) error {
	query := r.sb.Insert("Terms").
		Columns("name", "startDate", "endDate").
		Values(models.TermName{Season: season, Year: year}.String(), startDate, endDate)

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{duplicate: apperrors.ErrTermAlreadyExists}.refine(err)
}

// AddCourse offers a course in a term addressed by id or by name
func (r *TermRepository) AddCourse(ctx context.Context, term models.TermRef, courseID int64) error {
	var termValue interface{}
	switch ref := term.(type) {
	case models.TermID:
		termValue = int64(ref)
	case models.TermName:
		termValue = squirrel.Expr("(SELECT termID FROM Terms WHERE name = ?)", ref.String())
	default:
		return apperrors.NewValidationError("neither a term season/year or id was provided")
	}

	query := r.sb.Insert("Terms_has_Courses").
		Columns("termID", "courseID").
		Values(termValue, courseID)

	_, err := perform(ctx, r.exec, query, db.Write, nil)
	return writeErrors{duplicate: apperrors.ErrTermCourseExists}.refine(err)
}
