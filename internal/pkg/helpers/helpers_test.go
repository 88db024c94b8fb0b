package helpers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want Date
	}{
		{"time", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), "2024-09-01"},
		{"text", "2024-09-01", "2024-09-01"},
		{"text with time", "2024-09-01 00:00:00", "2024-09-01"},
		{"bytes rfc3339", []byte("2024-12-15T00:00:00Z"), "2024-12-15"},
		{"null", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestNullStringValue(t *testing.T) {
	assert.Equal(t, "", NullStringValue(sql.NullString{}))
	assert.Equal(t, "CS161 INTRO TO CS", NullStringValue(sql.NullString{String: "CS161 INTRO TO CS", Valid: true}))
}

func TestParseDuration_FallsBack(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, 29, got.Day())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}
