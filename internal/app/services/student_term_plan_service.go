package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/yigit/coursetracker/internal/app/models"
	"github.com/yigit/coursetracker/internal/app/repositories"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
	"github.com/yigit/coursetracker/internal/pkg/events"
)

const (
	msgPlanExists         = "A student term plan already exists for the provided student and term."
	msgPlanNotFound       = "No student term plan exists for the provided id."
	msgPlanCourseNotFound = "The course is not part of the student term plan."
	msgPlanCourseExists   = "The course is already part of the student term plan."
	msgNoCourseSelected   = "A course must be selected"
)

// NewStudentTermPlan holds the data of a plan to create
type NewStudentTermPlan struct {
	StudentID       string  `json:"studentId"`
	TermID          int64   `json:"termId"`
	AdvisorApproved bool    `json:"advisorApproved"`
	CourseIDs       []int64 `json:"courseIds"`
}

// StudentTermPlanService defines the interface for plan-related operations
type StudentTermPlanService interface {
	ListPlans(ctx context.Context) ([]models.StudentTermPlan, error)
	CreatePlan(ctx context.Context, plan NewStudentTermPlan) error
	// UpdatePlanCourse swaps courseID for newCourseID; a nil newCourseID means none was picked
	UpdatePlanCourse(ctx context.Context, planID, courseID int64, newCourseID *int64) error
	AddPlanCourse(ctx context.Context, planID int64, newCourseID *int64) error
	RemovePlanCourse(ctx context.Context, planID, courseID int64) error
	UpdateApproval(ctx context.Context, planID int64, approved bool) error
	DeletePlan(ctx context.Context, planID int64) error
}

type studentTermPlanServiceImpl struct {
	planRepo  repositories.StudentTermPlanRepositoryInterface
	tx        Transactor
	publisher events.Publisher
}

// NewStudentTermPlanService creates a new plan service instance
func NewStudentTermPlanService(planRepo repositories.StudentTermPlanRepositoryInterface, tx Transactor, publisher events.Publisher) StudentTermPlanService {
	return &studentTermPlanServiceImpl{
		planRepo:  planRepo,
		tx:        tx,
		publisher: publisher,
	}
}

func (s *studentTermPlanServiceImpl) ListPlans(ctx context.Context) ([]models.StudentTermPlan, error) {
	return s.planRepo.All(ctx)
}

func planKey(planID int64) string {
	return strconv.FormatInt(planID, 10)
}

// CreatePlan adds a plan and its course selections in one transaction.
// A student has at most one plan per term.
func (s *studentTermPlanServiceImpl) CreatePlan(ctx context.Context, plan NewStudentTermPlan) error {
	plan.StudentID = strings.TrimSpace(plan.StudentID)
	if plan.StudentID == "" || plan.TermID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	_, found, err := s.planRepo.Get(ctx, plan.StudentID, plan.TermID)
	if err != nil {
		return err
	}
	if found {
		return apperrors.NewAlreadyExistsError(apperrors.ErrPlanAlreadyExists, msgPlanExists)
	}

	key := models.PlanKey{StudentID: plan.StudentID, TermID: plan.TermID}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.planRepo.Create(ctx, plan.StudentID, plan.TermID, plan.AdvisorApproved); err != nil {
			return err
		}
		return s.planRepo.AddCourses(ctx, plan.CourseIDs, key)
	})
	if err != nil {
		err = describe(err, apperrors.ErrPlanAlreadyExists, msgPlanExists)
		err = describe(err, apperrors.ErrPlanCourseExists, "A course was listed more than once")
		return describe(err, apperrors.ErrInvalidReference, "The student, term or one of the courses does not exist")
	}

	publish(ctx, s.publisher, events.New(events.PlanCreated, plan.StudentID+"/"+strconv.FormatInt(plan.TermID, 10), plan))
	return nil
}

// UpdatePlanCourse replaces one course selection of a plan in place
func (s *studentTermPlanServiceImpl) UpdatePlanCourse(ctx context.Context, planID, courseID int64, newCourseID *int64) error {
	if planID <= 0 || courseID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}
	if newCourseID == nil {
		return apperrors.NewValidationError(msgNoCourseSelected)
	}

	if err := s.planRepo.UpdateCourse(ctx, *newCourseID, planID, courseID); err != nil {
		err = describe(err, apperrors.ErrPlanCourseNotFound, msgPlanCourseNotFound)
		err = describe(err, apperrors.ErrPlanCourseExists, msgPlanCourseExists)
		return describe(err, apperrors.ErrInvalidReference, "The new course does not exist")
	}

	publish(ctx, s.publisher, events.New(events.PlanCourseUpdated, planKey(planID), map[string]int64{
		"studentTermPlanId": planID,
		"courseId":          courseID,
		"newCourseId":       *newCourseID,
	}))
	return nil
}

// AddPlanCourse selects one more course in a plan
func (s *studentTermPlanServiceImpl) AddPlanCourse(ctx context.Context, planID int64, newCourseID *int64) error {
	if planID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}
	if newCourseID == nil {
		return apperrors.NewValidationError(msgNoCourseSelected)
	}

	if err := s.planRepo.AddCourses(ctx, []int64{*newCourseID}, models.PlanID(planID)); err != nil {
		err = describe(err, apperrors.ErrPlanCourseExists, msgPlanCourseExists)
		return describe(err, apperrors.ErrInvalidReference, "The student term plan or course does not exist")
	}

	publish(ctx, s.publisher, events.New(events.PlanCoursesAdded, planKey(planID), map[string]int64{
		"studentTermPlanId": planID,
		"courseId":          *newCourseID,
	}))
	return nil
}

// RemovePlanCourse drops one course selection from a plan
func (s *studentTermPlanServiceImpl) RemovePlanCourse(ctx context.Context, planID, courseID int64) error {
	if planID <= 0 || courseID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	if err := s.planRepo.RemoveCourse(ctx, planID, courseID); err != nil {
		return describe(err, apperrors.ErrPlanCourseNotFound, msgPlanCourseNotFound)
	}

	publish(ctx, s.publisher, events.New(events.PlanCourseRemoved, planKey(planID), map[string]int64{
		"studentTermPlanId": planID,
		"courseId":          courseID,
	}))
	return nil
}

// UpdateApproval records the advisor's decision on a plan
func (s *studentTermPlanServiceImpl) UpdateApproval(ctx context.Context, planID int64, approved bool) error {
	if planID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	if err := s.planRepo.UpdateApproval(ctx, planID, approved); err != nil {
		return describe(err, apperrors.ErrPlanNotFound, msgPlanNotFound)
	}

	publish(ctx, s.publisher, events.New(events.PlanApprovalUpdated, planKey(planID), map[string]any{
		"studentTermPlanId": planID,
		"advisorApproved":   approved,
	}))
	return nil
}

// DeletePlan removes a plan with its course selections
func (s *studentTermPlanServiceImpl) DeletePlan(ctx context.Context, planID int64) error {
	if planID <= 0 {
		return apperrors.NewValidationError(apperrors.MsgMissingAttributes)
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		return describe(err, apperrors.ErrPlanNotFound, msgPlanNotFound)
	}

	publish(ctx, s.publisher, events.New(events.PlanDeleted, planKey(planID), nil))
	return nil
}
