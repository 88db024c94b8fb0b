package models

// Student is identified by an institution-assigned id
type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StudentOption is the "Last, First - ID" form used in pickers
type StudentOption struct {
	Student   string `json:"student"`
	StudentID string `json:"studentID"`
}
