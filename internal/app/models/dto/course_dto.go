package dto

// CreateCourseRequest is the body of POST /add-course
type CreateCourseRequest struct {
	CourseCode            string `json:"course_code" binding:"required,course_code"`
	CourseName            string `json:"course_name" binding:"required,max=255"`
	CourseCredit          *Int   `json:"course_credit" binding:"required,min=0"`
	PrerequisiteCourseIDs []Int  `json:"prerequisite_course_ids" binding:"omitempty,dive,gt=0"`
}
