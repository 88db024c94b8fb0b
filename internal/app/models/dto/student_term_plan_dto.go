package dto

// Actions of PATCH /edit-student-term-plan
const (
	PlanActionUpdate = "update"
	PlanActionAdd    = "add"
)

// CreateStudentTermPlanRequest is the body of POST /add-student-term-plan
type CreateStudentTermPlanRequest struct {
	StudentID       string `json:"student_id" binding:"required"`
	TermID          *Int   `json:"term_id" binding:"required"`
	AdvisorApproved *Bool  `json:"advisor_approved" binding:"required"`
	Courses         []Int  `json:"courses" binding:"required,dive,gt=0"`
}

// EditStudentTermPlanRequest is the body of PATCH /edit-student-term-plan.
// CourseID is only needed by the update action.
type EditStudentTermPlanRequest struct {
	StudentTermPlanID *Int       `json:"student_term_plan_id" binding:"required"`
	CourseID          *Int       `json:"course_id" binding:"required_if=Action update"`
	NewCourseID       OptionalID `json:"new_course_id"`
	Action            string     `json:"action" binding:"required,oneof=update add"`
}

// UpdateApprovalRequest is the body of PATCH /edit-student-term-plan-approval
type UpdateApprovalRequest struct {
	StudentTermPlanID *Int  `json:"student_term_plan_id" binding:"required"`
	AdvisorApproved   *Bool `json:"advisor_approved" binding:"required"`
}

// RemovePlanCourseRequest is the body of DELETE /delete-student-term-plan-course
type RemovePlanCourseRequest struct {
	StudentTermPlanID *Int `json:"student_term_plan_id" binding:"required"`
	CourseID          *Int `json:"course_id" binding:"required"`
}
