package assessment

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDivisionUndefined is returned when a score would average zero values.
var ErrDivisionUndefined = errors.New("assessment: average of zero values is undefined")

// ValidationError pinpoints the first malformed part of a record.
// Index is -1 when the problem is not tied to a single response.
type ValidationError struct {
	Section  SectionID
	Category string
	Index    int
	Reason   string
}

func (v *ValidationError) Error() string {
	path := string(v.Section)
	if v.Category != "" {
		path += "." + v.Category
	}
	if v.Index >= 0 {
		path += fmt.Sprintf("[%d]", v.Index)
	}
	return fmt.Sprintf("%s: %s", path, v.Reason)
}

// ValidateRecord checks rec against layout and fails on the first problem:
// a missing or unknown category, a response list of the wrong length, or a
// response outside [0,5].
func ValidateRecord(rec *Record, layout Layout) error {
	if rec == nil {
		return &ValidationError{Index: -1, Reason: "record is missing"}
	}
	for _, sec := range layout {
		resp := rec.Section(sec.ID)
		if resp == nil {
			return &ValidationError{Section: sec.ID, Index: -1, Reason: "section has no responses"}
		}
		known := make(map[string]bool, len(sec.Categories))
		for _, cat := range sec.Categories {
			known[cat.Key] = true
			values, ok := resp[cat.Key]
			if !ok {
				return &ValidationError{Section: sec.ID, Category: cat.Key, Index: -1, Reason: "category has no responses"}
			}
			if len(values) != cat.Length {
				return &ValidationError{
					Section:  sec.ID,
					Category: cat.Key,
					Index:    -1,
					Reason:   fmt.Sprintf("expected %d responses, got %d", cat.Length, len(values)),
				}
			}
			for i, v := range values {
				if !v.Valid() {
					return &ValidationError{
						Section:  sec.ID,
						Category: cat.Key,
						Index:    i,
						Reason:   fmt.Sprintf("value %d outside [%d,%d]", v, Unanswered, MaxLikert),
					}
				}
			}
		}
		if extra := unknownKeys(resp, known); len(extra) > 0 {
			return &ValidationError{Section: sec.ID, Category: extra[0], Index: -1, Reason: "unknown category"}
		}
	}
	return nil
}

func unknownKeys(resp SectionResponses, known map[string]bool) []string {
	var out []string
	for k := range resp {
		if !known[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
