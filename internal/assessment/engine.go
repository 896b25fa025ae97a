package assessment

import (
	"fmt"
)

// Engine scores records against a fixed layout and attaches tier guidance.
// An Engine is immutable once built and safe to share.
type Engine struct {
	Layout           Layout
	Guidance         map[Recommendation]Guidance
	AlternativeRoles []string
	// Strict rejects malformed records instead of averaging whatever is present.
	Strict bool
}

// BuildGuidance returns the canned guidance for rec. Alternative roles are the
// same list for every tier.
func (e *Engine) BuildGuidance(rec Recommendation) Guidance {
	g := e.Guidance[rec]
	return Guidance{
		Headline:         g.Headline,
		Narrative:        g.Narrative,
		NextSteps:        append([]string(nil), g.NextSteps...),
		AlternativeRoles: append([]string(nil), e.AlternativeRoles...),
	}
}

// Evaluate scores a completed record. The returned result carries scores,
// recommendation and guidance; tool and input metadata are left to the caller.
func (e *Engine) Evaluate(rec *Record) (*Result, error) {
	if e.Strict {
		if err := ValidateRecord(rec, e.Layout); err != nil {
			return nil, err
		}
	} else if rec == nil {
		return nil, &ValidationError{Index: -1, Reason: "record is missing"}
	}

	res := &Result{Input: Input{Strict: e.Strict}}
	sectionScores := make(map[SectionID]int, len(e.Layout))
	var wiscarCategories []int

	for _, sec := range e.Layout {
		sr := SectionResult{ID: sec.ID, Title: sec.Title}
		resp := rec.Section(sec.ID)
		scores := make([]int, 0, len(sec.Categories))
		for _, cat := range sec.Categories {
			s, err := ScoreCategory(resp[cat.Key])
			if err != nil {
				return nil, fmt.Errorf("assessment.Evaluate: %s.%s: %w", sec.ID, cat.Key, err)
			}
			scores = append(scores, s)
			sr.Categories = append(sr.Categories, CategoryResult{Key: cat.Key, Title: cat.Title, Score: s})
		}
		score, err := ScoreSection(scores)
		if err != nil {
			return nil, fmt.Errorf("assessment.Evaluate: %s: %w", sec.ID, err)
		}
		sr.Score = score
		sectionScores[sec.ID] = score
		if sec.ID == SectionWISCAR {
			wiscarCategories = scores
		}
		res.Sections = append(res.Sections, sr)
	}

	for _, id := range SectionOrder {
		if _, ok := sectionScores[id]; !ok {
			return nil, fmt.Errorf("assessment.Evaluate: layout has no %s section", id)
		}
	}

	overall, err := ScoreOverall(sectionScores[SectionPsychometric], sectionScores[SectionTechnical], wiscarCategories)
	if err != nil {
		return nil, fmt.Errorf("assessment.Evaluate: overall: %w", err)
	}
	res.Overall = overall
	res.Recommendation = ClassifyRecommendation(overall)
	res.Status = res.Recommendation.Status()
	res.Guidance = e.BuildGuidance(res.Recommendation)
	return res, nil
}
