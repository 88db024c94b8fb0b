package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursetracker/internal/app/models/dto"
	"github.com/yigit/coursetracker/internal/app/services"
	"github.com/yigit/coursetracker/internal/middleware"
)

// TermController handles term-related operations
type TermController struct {
	termService services.TermService
}

// NewTermController creates a new TermController
func NewTermController(termService services.TermService) *TermController {
	return &TermController{
		termService: termService,
	}
}

// GetTerms lists the terms
// @Summary List terms
// @Tags terms
// @Produce json
// @Success 200 {object} dto.MessageResponse{data=[]models.Term}
// @Failure 500 {object} dto.ErrorResponse "Query failed"
// @Router /terms [get]
func (c *TermController) GetTerms(ctx *gin.Context) {
	terms, err := c.termService.ListTerms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse("Terms retrieved.", terms))
}

// AddTerm creates a term with the courses it offers
// @Summary Add a term
// @Tags terms
// @Accept json
// @Produce json
// @Param request body dto.CreateTermRequest true "Term"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attribute, duplicate name or unknown course"
// @Router /add-term [post]
func (c *TermController) AddTerm(ctx *gin.Context) {
	var req dto.CreateTermRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	err := c.termService.CreateTerm(ctx.Request.Context(), services.NewTerm{
		Season:    req.TermSeason,
		Year:      int(req.TermYear.Int64()),
		StartDate: req.TermStartDate,
		EndDate:   req.TermEndDate,
		CourseIDs: dto.Int64s(req.TermCourseIDs),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The term and courses if any have been added."))
}

// AddTermCourse offers one more course in a term
// @Summary Add a course to a term
// @Tags terms
// @Accept json
// @Produce json
// @Param request body dto.AddTermCourseRequest true "Term and course"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attribute or unknown term/course"
// @Router /add-term-course [patch]
func (c *TermController) AddTermCourse(ctx *gin.Context) {
	var req dto.AddTermCourseRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.termService.AddTermCourse(ctx.Request.Context(), req.TermID.Int64(), req.NewCourseID.Int64()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The course has been added."))
}
