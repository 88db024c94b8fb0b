package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCourseName(t *testing.T) {
	assert.True(t, IsValidCourseName("INTRO TO CS"))
	assert.True(t, IsValidCourseName(strings.Repeat("A", CourseNameMaxLength)))
	assert.False(t, IsValidCourseName(strings.Repeat("A", CourseNameMaxLength+1)))
	assert.False(t, IsValidCourseName("  "))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Ada"))
	assert.False(t, IsValidName(strings.Repeat("A", NameMaxLength+1)))
	assert.False(t, IsValidName(""))
}

func TestNormalizeSeason(t *testing.T) {
	season, ok := NormalizeSeason(" fall ")
	assert.True(t, ok)
	assert.Equal(t, "Fall", season)

	_, ok = NormalizeSeason("Autumn")
	assert.False(t, ok)
}
