package models

// StudentTermPlan is a row of the plan listing
type StudentTermPlan struct {
	StudentTermPlanID int64  `json:"studentTermPlanID"`
	StudentID         string `json:"studentID"`
	StudentName       string `json:"studentName"`
	TermName          string `json:"termName"`
	Courses           string `json:"courses"`
	AdvisorApproved   bool   `json:"advisorApproved"`
}
