package dto

// CreateStudentRequest is the body of POST /add-student
type CreateStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,student_id"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// DeleteStudentRequest is the body of DELETE /delete-student
type DeleteStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// UpdateStudentRequest is posted by the student edit form, as JSON or form fields
type UpdateStudentRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=100"`
}
