package models

// Term is an academic period; Courses joins the offered courses with ", "
type Term struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Courses   string `json:"courses"`
}
