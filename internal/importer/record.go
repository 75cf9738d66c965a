package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04",
	"01/02/2006 3:04 PM",
}

// Record is one external-platform record with its original field names. CSV
// rows carry string values; JSON rows carry whatever the document held.
type Record map[string]any

// Has reports whether the field is present with a non-empty value.
func (r Record) Has(key string) bool {
	value, ok := r[key]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// String returns the trimmed field value, or nil when absent or empty.
func (r Record) String(key string) *string {
	value, ok := r[key]
	if !ok || value == nil {
		return nil
	}
	var s string
	switch v := value.(type) {
	case string:
		s = strings.TrimSpace(v)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	if s == "" {
		return nil
	}
	return &s
}

// Int64 coerces the field to a whole number. The external platforms emit
// numeric ids as either numbers or strings, so both are accepted.
func (r Record) Int64(key string) *int64 {
	f := r.Float(key)
	if f == nil || math.Mod(*f, 1) != 0 {
		return nil
	}
	i := int64(*f)
	return &i
}

// Float coerces the field to a number, or nil when absent or unparseable.
func (r Record) Float(key string) *float64 {
	value, ok := r[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &f
		}
	}
	return nil
}

// Int coerces the field to an int.
func (r Record) Int(key string) *int {
	i64 := r.Int64(key)
	if i64 == nil {
		return nil
	}
	i := int(*i64)
	return &i
}

// Bool coerces the field to a boolean, accepting the usual spreadsheet
// spellings.
func (r Record) Bool(key string) *bool {
	value, ok := r[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case bool:
		return &v
	case float64:
		b := v != 0
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "":
			return nil
		case "1", "true", "yes", "y":
			b := true
			return &b
		case "0", "false", "no", "n":
			b := false
			return &b
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return &b
		}
	}
	return nil
}

// Time coerces the field to a timestamp, trying the known export layouts.
func (r Record) Time(key string) *time.Time {
	s := r.String(key)
	if s == nil {
		return nil
	}
	ts, err := parseTimestamp(*s)
	if err != nil {
		return nil
	}
	return &ts
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", raw)
}

// RecordSource yields parsed records one at a time, in file order. Next
// returns io.EOF when the source is exhausted.
type RecordSource interface {
	Next() (Record, error)
}

// sliceSource serves pre-parsed JSON or spreadsheet rows. Elements are
// converted lazily so a malformed interior record surfaces during
// transformation, not validation.
type sliceSource struct {
	items []any
	pos   int
}

func (s *sliceSource) Next() (Record, error) {
	for s.pos < len(s.items) {
		item := s.items[s.pos]
		s.pos++
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object", s.pos)
		}
		if len(rec) == 0 {
			continue
		}
		return Record(rec), nil
	}
	return nil, io.EOF
}
