package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursetracker/internal/app/models/dto"
	"github.com/yigit/coursetracker/internal/app/services"
	"github.com/yigit/coursetracker/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// GetStudents lists the students
// @Summary List students
// @Description With formatted=true the list holds "Last, First - ID" labels for selection forms
// @Tags students
// @Produce json
// @Param formatted query bool false "Return labels"
// @Success 200 {object} dto.MessageResponse{data=[]models.Student}
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	formatted, _ := strconv.ParseBool(ctx.Query("formatted"))

	if formatted {
		options, err := c.studentService.ListStudentOptions(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewDataResponse("Students retrieved.", options))
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse("Students retrieved.", students))
}

// AddStudent creates a student
// @Summary Add a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attribute or duplicate id"
// @Router /add-student [post]
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	err := c.studentService.CreateStudent(ctx.Request.Context(), services.NewStudent{
		ID:        req.StudentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("This student has been added."))
}

// DeleteStudent removes a student and the student's plans
// @Summary Delete a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.DeleteStudentRequest true "Student id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /delete-student [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	var req dto.DeleteStudentRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The student has been deleted."))
}

// GetStudent returns the student shown on the edit form
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} dto.MessageResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /edit-student/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse("Student retrieved.", student))
}

// UpdateStudent renames a student; the body may be JSON or form fields
// @Summary Update a student
// @Tags students
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Student id"
// @Param request body dto.UpdateStudentRequest true "Names"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /edit-student/{id} [post]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), ctx.Param("id"), req.FirstName, req.LastName); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("The student has been updated."))
}
