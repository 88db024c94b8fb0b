package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursetracker/internal/app/models/dto"
	"github.com/yigit/coursetracker/internal/app/services"
	"github.com/yigit/coursetracker/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetCourses lists the courses
// @Summary List courses
// @Description Lists every course with its prerequisites, or only course labels when with_prerequisites is false
// @Tags courses
// @Produce json
// @Param with_prerequisites query bool false "Include prerequisites (default true)"
// @Success 200 {object} dto.MessageResponse{data=[]models.CourseWithPrerequisites}
// @Failure 500 {object} dto.ErrorResponse "Query failed"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	withPrerequisites := true
	if raw := ctx.Query("with_prerequisites"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "with_prerequisites must be true or false").WithField("with_prerequisites"))
			return
		}
		withPrerequisites = v
	}

	if !withPrerequisites {
		options, err := c.courseService.ListCourseOptions(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewDataResponse("Courses retrieved.", options))
		return
	}

	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse("Courses retrieved.", courses))
}

// AddCourse creates a course with its prerequisites
// @Summary Add a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attribute, duplicate code or unknown prerequisite"
// @Failure 500 {object} dto.ErrorResponse "Query failed"
// @Router /add-course [post]
func (c *CourseController) AddCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	err := c.courseService.CreateCourse(ctx.Request.Context(), services.NewCourse{
		Code:            req.CourseCode,
		Name:            req.CourseName,
		Credit:          int(req.CourseCredit.Int64()),
		PrerequisiteIDs: dto.Int64s(req.PrerequisiteCourseIDs),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The course and prerequisite(s) if any have been added."))
}
