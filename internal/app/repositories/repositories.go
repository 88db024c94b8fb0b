package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/coursetracker/internal/db"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/dberrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository          *CourseRepository
	TermRepository            *TermRepository
	StudentRepository         *StudentRepository
	StudentTermPlanRepository *StudentTermPlanRepository
}

// NewRepositories initializes all repositories
func NewRepositories(exec *db.Executor) *Repositories {
	return &Repositories{
		CourseRepository:          NewCourseRepository(exec),
		TermRepository:            NewTermRepository(exec),
		StudentRepository:         NewStudentRepository(exec),
		StudentTermPlanRepository: NewStudentTermPlanRepository(exec),
	}
}

// perform runs stmt and turns every non-success result into a QueryError
func perform(ctx context.Context, exec *db.Executor, stmt squirrel.Sqlizer, mode db.Mode, scan db.RowScanner) (db.Result, error) {
	res := exec.Run(ctx, stmt, mode, scan)
	if !res.OK() {
		return res, apperrors.NewQueryError(res.Status, res.Err)
	}
	return res, nil
}

// writeErrors names the domain errors a failed write is refined into
type writeErrors struct {
	// notFound is returned when an update or delete matched no row.
	// Left nil for inserts, where a zero-row write is an invalid reference.
	notFound  error
	duplicate error
}

func (w writeErrors) refine(err error) error {
	var qe *apperrors.QueryError
	if !errors.As(err, &qe) {
		return err
	}

	switch {
	case errors.Is(qe.Err, db.ErrNoRowsAffected) && w.notFound != nil:
		return w.notFound
	case errors.Is(qe.Err, db.ErrNoRowsAffected):
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidReference, qe.Err)
	case w.duplicate != nil && dberrors.IsUniqueViolation(qe.Err):
		return fmt.Errorf("%w: %v", w.duplicate, qe.Err)
	case dberrors.IsReferenceViolation(qe.Err):
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidReference, qe.Err)
	}
	return err
}

// nameOf renders "CODE NAME" style labels in the store's dialect
func nameOf(d db.Dialect, first, second string) string {
	return d.Concat(first, "' '", second)
}
