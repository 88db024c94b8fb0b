package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/db/dbtest"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
)

func newSQLiteServices(t *testing.T) *Services {
	t.Helper()
	exec := dbtest.NewExecutor(t)
	return NewServices(repositories.NewRepositories(exec), exec, nil)
}

func TestCreateCourse_RollsBackOnMissingPrerequisite(t *testing.T) {
	svc := newSQLiteServices(t)
	ctx := context.Background()

	err := svc.CourseService.CreateCourse(ctx, NewCourse{Code: "CS162", Name: "INTRO TO CS II", Credit: 4, PrerequisiteIDs: []int64{42}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	courses, err := svc.CourseService.ListCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestScenario_PlanLifecycle(t *testing.T) {
	svc := newSQLiteServices(t)
	ctx := context.Background()

	require.NoError(t, svc.CourseService.CreateCourse(ctx, NewCourse{Code: "CS161", Name: "INTRO TO CS", Credit: 4}))
	require.NoError(t, svc.CourseService.CreateCourse(ctx, NewCourse{Code: "CS162", Name: "INTRO TO CS II", Credit: 4, PrerequisiteIDs: []int64{1}}))
	require.NoError(t, svc.TermService.CreateTerm(ctx, NewTerm{Season: "Fall", Year: 2024, StartDate: "2024-09-25", EndDate: "2024-12-13", CourseIDs: []int64{1, 2}}))
	require.NoError(t, svc.StudentService.CreateStudent(ctx, NewStudent{ID: "900123", FirstName: "Ada", LastName: "Lovelace"}))

	courses, err := svc.CourseService.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS161 INTRO TO CS", courses[1].Prerequisites)

	terms, err := svc.TermService.ListTerms(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Fall 2024", terms[0].Name)

	require.NoError(t, svc.StudentTermPlanService.CreatePlan(ctx, NewStudentTermPlan{StudentID: "900123", TermID: 1, CourseIDs: []int64{1}}))

	err = svc.StudentTermPlanService.CreatePlan(ctx, NewStudentTermPlan{StudentID: "900123", TermID: 1})
	assert.ErrorIs(t, err, apperrors.ErrPlanAlreadyExists)

	require.NoError(t, svc.StudentTermPlanService.UpdatePlanCourse(ctx, 1, 1, int64Ptr(2)))
	require.NoError(t, svc.StudentTermPlanService.AddPlanCourse(ctx, 1, int64Ptr(1)))
	require.NoError(t, svc.StudentTermPlanService.UpdateApproval(ctx, 1, true))

	plans, err := svc.StudentTermPlanService.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "CS161 INTRO TO CS, CS162 INTRO TO CS II", plans[0].Courses)
	assert.True(t, plans[0].AdvisorApproved)

	require.NoError(t, svc.StudentService.DeleteStudent(ctx, "900123"))

	plans, err = svc.StudentTermPlanService.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
