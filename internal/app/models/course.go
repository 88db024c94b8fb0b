package models

// Course is a catalogue entry identified by its code
type Course struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Credit int    `json:"credit"`
}

// CourseWithPrerequisites is a row of the course listing.
// Course is "CODE NAME"; Prerequisites joins the prerequisite courses with ", ".
type CourseWithPrerequisites struct {
	ID            int64  `json:"id"`
	Course        string `json:"course"`
	Credit        int    `json:"credit"`
	Prerequisites string `json:"prerequisites"`
}

// CourseOption is the short listing used to pick courses
type CourseOption struct {
	Course string `json:"course"`
	ID     int64  `json:"id"`
}
