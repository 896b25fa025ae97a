package assessment

import (
	"fmt"
	"math"
)

// Recommendation thresholds on the overall percentage.
const (
	StrongFitThreshold    = 75
	PotentialFitThreshold = 55
)

// Technical item credit. A wrong selection still earns partial credit, which
// keeps "answered but wrong" distinct from "not answered".
const (
	CorrectScore   Response = 5
	AttemptedScore Response = 2
)

// NoSelection marks a technical question with no option chosen.
const NoSelection = -1

// ScoreCategory returns the mean of responses as a percentage of the maximum
// Likert value, rounded to the nearest integer.
func ScoreCategory(responses CategoryResponses) (int, error) {
	if len(responses) == 0 {
		return 0, ErrDivisionUndefined
	}
	sum := 0
	for _, r := range responses {
		sum += int(r)
	}
	return round(float64(sum*100) / float64(len(responses)*int(MaxLikert))), nil
}

// ScoreTechnicalCategory converts selected option indexes into responses using
// the answer key. Exact match scores 5, any other selection 2, no selection 0.
func ScoreTechnicalCategory(selected, correct []int) (CategoryResponses, error) {
	if len(selected) != len(correct) {
		return nil, fmt.Errorf("assessment.ScoreTechnicalCategory: %d selections for %d questions", len(selected), len(correct))
	}
	out := make(CategoryResponses, len(correct))
	for i, sel := range selected {
		switch {
		case sel < 0:
			out[i] = Unanswered
		case sel == correct[i]:
			out[i] = CorrectScore
		default:
			out[i] = AttemptedScore
		}
	}
	return out, nil
}

// ScoreSection averages category scores with equal weight and rounds once.
func ScoreSection(categoryScores []int) (int, error) {
	if len(categoryScores) == 0 {
		return 0, ErrDivisionUndefined
	}
	return round(mean(categoryScores)), nil
}

// ScoreOverall folds the WISCAR categories into one section mean and averages
// it with the psychometric and technical section scores. The WISCAR mean is
// not rounded before the final average, so the six WISCAR categories together
// carry the same weight as each of the other sections.
func ScoreOverall(psychometric, technical int, wiscarCategories []int) (int, error) {
	if len(wiscarCategories) == 0 {
		return 0, ErrDivisionUndefined
	}
	return round((float64(psychometric+technical) + mean(wiscarCategories)) / 3), nil
}

// ClassifyRecommendation maps an overall score onto a tier.
func ClassifyRecommendation(overall int) Recommendation {
	switch {
	case overall >= StrongFitThreshold:
		return RecommendationStrongFit
	case overall >= PotentialFitThreshold:
		return RecommendationPotentialFit
	default:
		return RecommendationPoorFit
	}
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// round rounds half up: 52.5 becomes 53.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
