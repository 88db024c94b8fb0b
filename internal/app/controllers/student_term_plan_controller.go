package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursetracker/internal/app/models/dto"
	"github.com/yigit/coursetracker/internal/app/services"
	"github.com/yigit/coursetracker/internal/middleware"
	"github.com/yigit/coursetracker/internal/pkg/apperrors"
)

// StudentTermPlanController handles plan-related operations
type StudentTermPlanController struct {
	planService services.StudentTermPlanService
}

// NewStudentTermPlanController creates a new StudentTermPlanController
func NewStudentTermPlanController(planService services.StudentTermPlanService) *StudentTermPlanController {
	return &StudentTermPlanController{
		planService: planService,
	}
}

// GetPlans lists the plans
// @Summary List student term plans
// @Tags plans
// @Produce json
// @Success 200 {object} dto.MessageResponse{data=[]models.StudentTermPlan}
// @Router /student-term-plans [get]
func (c *StudentTermPlanController) GetPlans(ctx *gin.Context) {
	plans, err := c.planService.ListPlans(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse("Student term plans retrieved.", plans))
}

// AddPlan creates a plan with its course selections
// @Summary Add a student term plan
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentTermPlanRequest true "Plan"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attribute, existing plan or unknown reference"
// @Router /add-student-term-plan [post]
func (c *StudentTermPlanController) AddPlan(ctx *gin.Context) {
	var req dto.CreateStudentTermPlanRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	err := c.planService.CreatePlan(ctx.Request.Context(), services.NewStudentTermPlan{
		StudentID:       req.StudentID,
		TermID:          req.TermID.Int64(),
		AdvisorApproved: bool(*req.AdvisorApproved),
		CourseIDs:       dto.Int64s(req.Courses),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The student term plan and associated course(s) has been added."))
}

// EditPlan swaps a course of a plan (action update) or adds one (action add).
// A new_course_id of "None" means no course was selected.
// @Summary Edit the courses of a student term plan
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.EditStudentTermPlanRequest true "Edit"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attribute or no course selected"
// @Failure 404 {object} dto.ErrorResponse "Course not part of the plan"
// @Router /edit-student-term-plan [patch]
func (c *StudentTermPlanController) EditPlan(ctx *gin.Context) {
	var req dto.EditStudentTermPlanRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	planID := req.StudentTermPlanID.Int64()

	var (
		err     error
		message string
	)
	switch req.Action {
	case dto.PlanActionUpdate:
		err = c.planService.UpdatePlanCourse(ctx.Request.Context(), planID, req.CourseID.Int64(), req.NewCourseID.Ptr())
		message = "The course has been updated."
	case dto.PlanActionAdd:
		err = c.planService.AddPlanCourse(ctx.Request.Context(), planID, req.NewCourseID.Ptr())
		message = "The course has been added."
	default:
		err = apperrors.NewValidationError("action must be one of: update add")
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// UpdateApproval records the advisor's decision
// @Summary Update advisor approval of a plan
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.UpdateApprovalRequest true "Approval"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /edit-student-term-plan-approval [patch]
func (c *StudentTermPlanController) UpdateApproval(ctx *gin.Context) {
	var req dto.UpdateApprovalRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.planService.UpdateApproval(ctx.Request.Context(), req.StudentTermPlanID.Int64(), bool(*req.AdvisorApproved)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The advisor approval has been updated."))
}

// DeletePlan removes a plan
// @Summary Delete a student term plan
// @Tags plans
// @Produce json
// @Param id path int true "Plan id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /delete-student-term-plan/{id} [delete]
func (c *StudentTermPlanController) DeletePlan(ctx *gin.Context) {
	planID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Student term plan id must be a number").WithField("id"))
		return
	}

	if err := c.planService.DeletePlan(ctx.Request.Context(), planID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The student term plan has been deleted."))
}

// RemovePlanCourse drops one course from a plan
// @Summary Remove a course from a student term plan
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.RemovePlanCourseRequest true "Plan and course"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Course not part of the plan"
// @Router /delete-student-term-plan-course [delete]
func (c *StudentTermPlanController) RemovePlanCourse(ctx *gin.Context) {
	var req dto.RemovePlanCourseRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.planService.RemovePlanCourse(ctx.Request.Context(), req.StudentTermPlanID.Int64(), req.CourseID.Int64()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The student course plan course has been deleted."))
}
