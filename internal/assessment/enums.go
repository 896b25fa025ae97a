package assessment

// SectionID names one of the three top-level sections.
type SectionID string

const (
	SectionPsychometric SectionID = "psychometric"
	SectionTechnical    SectionID = "technical"
	SectionWISCAR       SectionID = "wiscar"
)

// SectionOrder is the fixed order sections are completed and reported in.
var SectionOrder = []SectionID{SectionPsychometric, SectionTechnical, SectionWISCAR}

func (s SectionID) Valid() bool {
	switch s {
	case SectionPsychometric, SectionTechnical, SectionWISCAR:
		return true
	}
	return false
}

// Recommendation is the three-way fit classification.
type Recommendation string

const (
	RecommendationStrongFit    Recommendation = "STRONG_FIT"
	RecommendationPotentialFit Recommendation = "POTENTIAL_FIT"
	RecommendationPoorFit      Recommendation = "POOR_FIT"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationStrongFit, RecommendationPotentialFit, RecommendationPoorFit:
		return true
	}
	return false
}

// Status returns the short yes/maybe/no label shown next to the overall score.
func (r Recommendation) Status() string {
	switch r {
	case RecommendationStrongFit:
		return "yes"
	case RecommendationPotentialFit:
		return "maybe"
	case RecommendationPoorFit:
		return "no"
	}
	return ""
}

// Level orders tiers from best (0) to worst (2). Unknown tiers return -1.
func (r Recommendation) Level() int {
	switch r {
	case RecommendationStrongFit:
		return 0
	case RecommendationPotentialFit:
		return 1
	case RecommendationPoorFit:
		return 2
	}
	return -1
}
