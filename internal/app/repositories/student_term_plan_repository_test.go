package repositories

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/db"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
)

type planFixture struct {
	repos  *Repositories
	termID int64
	cs161  int64
	cs162  int64
}

func newPlanFixture(t *testing.T) planFixture {
	t.Helper()
	repos := newTestRepositories(t)
	require.NoError(t, repos.StudentRepository.Create(context.Background(), "900123456", "Ada", "Lovelace"))

	return planFixture{
		repos:  repos,
		termID: seedTerm(t, repos, "Fall", 2024, "2024-09-01", "2024-12-15"),
		cs161:  seedCourse(t, repos, "CS161", "INTRO TO CS", 4),
		cs162:  seedCourse(t, repos, "CS162", "INTRO TO CS II", 4),
	}
}

func (f planFixture) createPlan(t *testing.T, courses ...int64) int64 {
	t.Helper()
	ctx := context.Background()
	plans := f.repos.StudentTermPlanRepository

	require.NoError(t, plans.Create(ctx, "900123456", f.termID, false))
	require.NoError(t, plans.AddCourses(ctx, courses, models.PlanKey{StudentID: "900123456", TermID: f.termID}))

	id, found, err := plans.Get(ctx, "900123456", f.termID)
	require.NoError(t, err)
	require.True(t, found)
	return id
}

func countPlanCourses(t *testing.T, f planFixture, planID int64) []int64 {
	t.Helper()
	plans := f.repos.StudentTermPlanRepository

	query := plans.sb.Select("courseID").
		From(planCoursesTable).
		Where(squirrel.Eq{"studentTermPlanID": planID}).
		OrderBy("courseID")

	var ids []int64
	_, err := perform(context.Background(), plans.exec, query, db.ReadMany, func(row db.Scanner) error {
		var id int64
		if err := row.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	require.NoError(t, err)
	return ids
}

func TestStudentTermPlanRepository_ScenarioC(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	planID := f.createPlan(t, f.cs161)

	plans, err := f.repos.StudentTermPlanRepository.All(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, models.StudentTermPlan{
		StudentTermPlanID: planID,
		StudentID:         "900123456",
		StudentName:       "Ada Lovelace",
		TermName:          "Fall 2024",
		Courses:           "CS161 INTRO TO CS",
		AdvisorApproved:   false,
	}, plans[0])
}

func TestStudentTermPlanRepository_DuplicatePlan(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	f.createPlan(t, f.cs161)

	err := f.repos.StudentTermPlanRepository.Create(ctx, "900123456", f.termID, true)
	assert.ErrorIs(t, err, apperrors.ErrPlanAlreadyExists)

	plans, err := f.repos.StudentTermPlanRepository.All(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestStudentTermPlanRepository_EmptyPlanIsListed(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	f.createPlan(t)

	plans, err := f.repos.StudentTermPlanRepository.All(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Empty(t, plans[0].Courses)
}

func TestStudentTermPlanRepository_SwapCourse(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	planID := f.createPlan(t, f.cs161)

	require.NoError(t, f.repos.StudentTermPlanRepository.UpdateCourse(ctx, f.cs162, planID, f.cs161))
	assert.Equal(t, []int64{f.cs162}, countPlanCourses(t, f, planID))

	err := f.repos.StudentTermPlanRepository.UpdateCourse(ctx, f.cs162, planID, f.cs161)
	assert.ErrorIs(t, err, apperrors.ErrPlanCourseNotFound)

	err = f.repos.StudentTermPlanRepository.UpdateCourse(ctx, 999, planID, f.cs162)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
}

func TestStudentTermPlanRepository_AddAndRemoveCourses(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	plans := f.repos.StudentTermPlanRepository
	planID := f.createPlan(t, f.cs161)

	require.NoError(t, plans.AddCourses(ctx, []int64{f.cs162}, models.PlanID(planID)))
	assert.Equal(t, []int64{f.cs161, f.cs162}, countPlanCourses(t, f, planID))

	err := plans.AddCourses(ctx, []int64{f.cs162}, models.PlanID(planID))
	assert.ErrorIs(t, err, apperrors.ErrPlanCourseExists)

	err = plans.AddCourses(ctx, []int64{f.cs161}, models.PlanID(999))
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	err = plans.AddCourses(ctx, []int64{f.cs161}, models.PlanKey{StudentID: "nobody", TermID: f.termID})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	require.NoError(t, plans.RemoveCourse(ctx, planID, f.cs161))
	assert.Equal(t, []int64{f.cs162}, countPlanCourses(t, f, planID))
	assert.ErrorIs(t, plans.RemoveCourse(ctx, planID, f.cs161), apperrors.ErrPlanCourseNotFound)
}

func TestStudentTermPlanRepository_ApprovalAndDelete(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	plans := f.repos.StudentTermPlanRepository
	planID := f.createPlan(t, f.cs161)

	require.NoError(t, plans.UpdateApproval(ctx, planID, true))
	require.NoError(t, plans.UpdateApproval(ctx, planID, true))
	all, err := plans.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].AdvisorApproved)

	assert.ErrorIs(t, plans.UpdateApproval(ctx, 999, true), apperrors.ErrPlanNotFound)

	require.NoError(t, plans.Delete(ctx, planID))
	assert.Empty(t, countPlanCourses(t, f, planID))
	assert.ErrorIs(t, plans.Delete(ctx, planID), apperrors.ErrPlanNotFound)
}

func TestStudentTermPlanRepository_DeletingStudentRemovesPlans(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	planID := f.createPlan(t, f.cs161)

	require.NoError(t, f.repos.StudentRepository.Delete(ctx, "900123456"))

	plans, err := f.repos.StudentTermPlanRepository.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Empty(t, countPlanCourses(t, f, planID))
}

func TestStudentTermPlanRepository_CreateInvalidReference(t *testing.T) {
	f := newPlanFixture(t)

	err := f.repos.StudentTermPlanRepository.Create(context.Background(), "nobody", f.termID, false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
}

func TestStudentTermPlanRepository_AllIsRepeatable(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	plans := f.repos.StudentTermPlanRepository

	require.NoError(t, f.repos.StudentRepository.Create(ctx, "900000001", "Charles", "Babbage"))
	require.NoError(t, plans.Create(ctx, "900000001", f.termID, true))
	require.NoError(t, plans.AddCourses(ctx, []int64{f.cs162, f.cs161}, models.PlanKey{StudentID: "900000001", TermID: f.termID}))
	lovelacePlan := f.createPlan(t, f.cs162, f.cs161)

	first, err := plans.All(ctx)
	require.NoError(t, err)
	second, err := plans.All(ctx)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "Charles Babbage", first[0].StudentName)
	assert.Equal(t, "CS161 INTRO TO CS, CS162 INTRO TO CS II", first[0].Courses)
	assert.Equal(t, lovelacePlan, first[1].StudentTermPlanID)
	assert.Equal(t, first[0].Courses, first[1].Courses)
	assert.Equal(t, first, second)
}
