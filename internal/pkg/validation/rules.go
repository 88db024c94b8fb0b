package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Course code: letters followed by a number, e.g. CS161 or MTH 251H
	CourseCodePattern = `^[A-Za-z]{1,8} ?[0-9]{1,4}[A-Za-z]?$`

	// Student identifier chosen by the institution, e.g. 900123456
	StudentIDPattern = `^[A-Za-z0-9]{1,20}$`

	// Name validation max length
	NameMaxLength = 100

	// Course names fill a VARCHAR(255) column
	CourseNameMaxLength = 255

	// Seasons a term can be named after
	Seasons = []string{"Fall", "Winter", "Spring", "Summer"}

	// Accepted term years
	MinTermYear = 1900
	MaxTermYear = 2999
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
	StudentID  *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
	StudentID:  regexp.MustCompile(StudentIDPattern),
}

// IsValidCourseCode checks the course code format
func IsValidCourseCode(code string) bool {
	return CompiledPatterns.CourseCode.MatchString(strings.TrimSpace(code))
}

// IsValidStudentID checks the student identifier format
func IsValidStudentID(id string) bool {
	return CompiledPatterns.StudentID.MatchString(strings.TrimSpace(id))
}

// NormalizeSeason returns the canonical spelling of a season ("fall" -> "Fall")
// and whether it is one of the known seasons.
func NormalizeSeason(season string) (string, bool) {
	s := strings.TrimSpace(season)
	for _, known := range Seasons {
		if strings.EqualFold(s, known) {
			return known, true
		}
	}
	return s, false
}

// IsValidTermYear checks the year range of a term
func IsValidTermYear(year int) bool {
	return year >= MinTermYear && year <= MaxTermYear
}

// IsValidName checks a required display name
func IsValidName(name string) bool {
	n := strings.TrimSpace(name)
	return n != "" && len(n) <= NameMaxLength
}

// IsValidCourseName checks a required course title
func IsValidCourseName(name string) bool {
	n := strings.TrimSpace(name)
	return n != "" && len(n) <= CourseNameMaxLength
}
