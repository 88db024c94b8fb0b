package dto

// CreateTermRequest is the body of POST /add-term
type CreateTermRequest struct {
	TermSeason    string `json:"term_season" binding:"required,season"`
	TermYear      *Int   `json:"term_year" binding:"required"`
	TermStartDate string `json:"term_start_date" binding:"required,datetime=2006-01-02"`
	TermEndDate   string `json:"term_end_date" binding:"required,datetime=2006-01-02"`
	TermCourseIDs []Int  `json:"term_course_ids" binding:"omitempty,dive,gt=0"`
}

// AddTermCourseRequest is the body of PATCH /add-term-course
type AddTermCourseRequest struct {
	TermID      *Int `json:"term_id" binding:"required"`
	NewCourseID *Int `json:"new_course_id" binding:"required"`
}
