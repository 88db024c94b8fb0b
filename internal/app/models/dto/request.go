package dto

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// NoneValue is posted by the plan form when no course is selected
const NoneValue = "None"

// Int is an integer that also accepts its quoted form, as posted by HTML forms
type Int int64

// UnmarshalJSON accepts 4 and "4"
func (i *Int) UnmarshalJSON(b []byte) error {
	n, err := strconv.ParseInt(unquote(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*i = Int(n)
	return nil
}

// Int64 returns the plain value
func (i Int) Int64() int64 {
	return int64(i)
}

// Int64s converts a list of ids
func Int64s(ids []Int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

// Bool accepts true/false, 1/0 and their quoted forms
type Bool bool

// UnmarshalJSON implements json.Unmarshaler
func (v *Bool) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(unquote(b)) {
	case "true", "1", "yes", "on":
		*v = true
	case "false", "0", "no", "off":
		*v = false
	default:
		return fmt.Errorf("invalid boolean %s", b)
	}
	return nil
}

// OptionalID is an id that may be absent: null, "" and "None" all mean no value
type OptionalID struct {
	Value int64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*o = OptionalID{}
		return nil
	}

	s := unquote(b)
	if s == "" || s == NoneValue {
		*o = OptionalID{}
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*o = OptionalID{Value: n, Valid: true}
	return nil
}

// Ptr returns the id or nil when absent
func (o OptionalID) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
