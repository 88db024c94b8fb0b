package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursetracker/internal/app/controllers"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Course          *controllers.CourseController
	Term            *controllers.TermController
	Student         *controllers.StudentController
	StudentTermPlan *controllers.StudentTermPlanController
	Health          *controllers.HealthController
}

// SetupRouter configures all application routes. metrics serves the
// prometheus exposition and may be nil.
func SetupRouter(router *gin.Engine, c Controllers, metrics http.Handler) {
	// --- Courses ---
	router.GET("/courses", c.Course.GetCourses)
	router.POST("/add-course", c.Course.AddCourse)

	// --- Terms ---
	router.GET("/terms", c.Term.GetTerms)
	router.POST("/add-term", c.Term.AddTerm)
	router.PATCH("/add-term-course", c.Term.AddTermCourse)

	// --- Student term plans ---
	router.GET("/student-term-plans", c.StudentTermPlan.GetPlans)
	router.POST("/add-student-term-plan", c.StudentTermPlan.AddPlan)
	router.PATCH("/edit-student-term-plan", c.StudentTermPlan.EditPlan)
	router.PATCH("/edit-student-term-plan-approval", c.StudentTermPlan.UpdateApproval)
	router.DELETE("/delete-student-term-plan/:id", c.StudentTermPlan.DeletePlan)
	router.DELETE("/delete-student-term-plan-course", c.StudentTermPlan.RemovePlanCourse)

	// --- Students ---
	router.GET("/students", c.Student.GetStudents)
	router.POST("/add-student", c.Student.AddStudent)
	router.DELETE("/delete-student", c.Student.DeleteStudent)
	router.GET("/edit-student/:id", c.Student.GetStudent)
	router.POST("/edit-student/:id", c.Student.UpdateStudent)

	// --- Health ---
	router.GET("/ping", c.Health.Ping)
	router.GET("/health", c.Health.Health)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
}
