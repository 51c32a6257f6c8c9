package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"
)

// Weight is a job's measured weight, normalized to a canonical slice of
// tonnage entries. Upstream systems serialize it inconsistently (a bare
// number, an array of numbers, or either of those wrapped in a JSON-encoded
// string), so all decoding funnels through one normalization step.
// Weight is only meaningful for Tonnage dispatch; other types ignore it.
type Weight []float64

// Sum returns the total of all weight entries.
func (w Weight) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// UnmarshalJSON implements json.Unmarshaler, accepting any of the legacy
// encodings. Unparseable input decodes to an empty Weight (sums to 0).
func (w *Weight) UnmarshalJSON(b []byte) error {
	*w = normalizeWeight(string(b))
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting the canonical
// array form.
func (w Weight) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]float64(w))
}

// Scan implements sql.Scanner. Weights are stored as their serialized text.
func (w *Weight) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*w = nil
	case []byte:
		*w = normalizeWeight(string(v))
	case string:
		*w = normalizeWeight(v)
	case float64:
		*w = Weight{v}
	case int64:
		*w = Weight{float64(v)}
	default:
		*w = nil
	}
	return nil
}

// Value implements driver.Valuer, persisting the canonical array form.
func (w Weight) Value() (driver.Value, error) {
	b, err := w.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// normalizeWeight parses any of the accepted encodings into entries.
// It recurses at most once, for the string-wrapped case.
func normalizeWeight(s string) Weight {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}
	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return nil
		}
		return normalizeWeight(inner)
	}
	if s[0] == '[' {
		var entries []any
		if err := json.Unmarshal([]byte(s), &entries); err != nil {
			return nil
		}
		out := make(Weight, 0, len(entries))
		for _, e := range entries {
			switch v := e.(type) {
			case float64:
				out = append(out, v)
			case string:
				if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
					out = append(out, n)
				}
			}
		}
		return out
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return Weight{v}
}
