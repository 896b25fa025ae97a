// Package schema validates response documents against an instrument and
// checks that a results structure is internally consistent.
package schema

import (
	"fmt"

	"github.com/dshills/fitcheck/internal/assessment"
)

// ValidationError describes a single inconsistency.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateResult re-derives section scores, the overall score and the
// recommendation from the category scores in r and reports every mismatch.
func ValidateResult(r *assessment.Result) []ValidationError {
	var errs []ValidationError

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if r.Version == "" {
		errs = append(errs, ValidationError{"version", "required"})
	}
	if !r.Recommendation.Valid() {
		errs = append(errs, ValidationError{"recommendation", fmt.Sprintf("invalid: %q", r.Recommendation)})
	}
	if r.Status != r.Recommendation.Status() {
		errs = append(errs, ValidationError{"status", fmt.Sprintf("%q does not match recommendation %s", r.Status, r.Recommendation)})
	}

	if len(r.Sections) != len(assessment.SectionOrder) {
		errs = append(errs, ValidationError{"sections", fmt.Sprintf("expected %d sections, got %d", len(assessment.SectionOrder), len(r.Sections))})
		return errs
	}

	sectionScores := make(map[assessment.SectionID]int)
	var wiscar []int
	for i, sec := range r.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		if sec.ID != assessment.SectionOrder[i] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("expected %q, got %q", assessment.SectionOrder[i], sec.ID)})
		}
		scores := make([]int, 0, len(sec.Categories))
		for j, cat := range sec.Categories {
			if cat.Key == "" {
				errs = append(errs, ValidationError{fmt.Sprintf("%s.categories[%d].key", prefix, j), "required"})
			}
			if cat.Score < 0 || cat.Score > 100 {
				errs = append(errs, ValidationError{fmt.Sprintf("%s.categories[%d].score", prefix, j), fmt.Sprintf("%d outside [0,100]", cat.Score)})
			}
			scores = append(scores, cat.Score)
		}
		expected, err := assessment.ScoreSection(scores)
		if err != nil {
			errs = append(errs, ValidationError{prefix + ".categories", "at least one category required"})
			continue
		}
		if sec.Score != expected {
			errs = append(errs, ValidationError{prefix + ".score", fmt.Sprintf("score %d does not match computed %d", sec.Score, expected)})
		}
		sectionScores[sec.ID] = sec.Score
		if sec.ID == assessment.SectionWISCAR {
			wiscar = scores
		}
	}

	overall, err := assessment.ScoreOverall(sectionScores[assessment.SectionPsychometric], sectionScores[assessment.SectionTechnical], wiscar)
	if err != nil {
		errs = append(errs, ValidationError{"overall", "cannot be derived without wiscar categories"})
		return errs
	}
	if r.Overall != overall {
		errs = append(errs, ValidationError{"overall", fmt.Sprintf("score %d does not match computed %d", r.Overall, overall)})
	}
	if want := assessment.ClassifyRecommendation(r.Overall); r.Recommendation.Valid() && r.Recommendation != want {
		errs = append(errs, ValidationError{"recommendation", fmt.Sprintf("%s does not match overall %d (want %s)", r.Recommendation, r.Overall, want)})
	}
	if r.Guidance.Headline == "" {
		errs = append(errs, ValidationError{"guidance.headline", "required"})
	}

	return errs
}
