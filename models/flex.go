package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that tolerates sloppy JSON input: a number, a
// numeric string, null, or the empty string. Anything unparseable decodes
// to 0 so one bad record cannot halt a batch computation.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if s[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
		s = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Scan implements sql.Scanner so FlexFloat columns read back from SQLite.
func (f *FlexFloat) Scan(src any) error {
	*f = 0
	switch v := src.(type) {
	case nil:
	case float64:
		*f = FlexFloat(v)
	case int64:
		*f = FlexFloat(v)
	case []byte:
		if n, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64); err == nil {
			*f = FlexFloat(n)
		}
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*f = FlexFloat(n)
		}
	}
	return nil
}

// Float64 returns the underlying value.
func (f FlexFloat) Float64() float64 { return float64(f) }
