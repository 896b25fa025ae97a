package assessment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(n int, v Response) CategoryResponses {
	out := make(CategoryResponses, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScoreCategoryUniform(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		for k := Unanswered; k <= MaxLikert; k++ {
			got, err := ScoreCategory(uniform(n, k))
			require.NoError(t, err)
			assert.Equal(t, int(k)*20, got, "n=%d k=%d", n, k)
		}
	}
}

func TestScoreCategoryRounding(t *testing.T) {
	tests := []struct {
		name string
		in   CategoryResponses
		want int
	}{
		{"two thirds up", CategoryResponses{5, 5, 4}, 93},
		{"one third down", CategoryResponses{5, 4, 4}, 87},
		{"mixed four", CategoryResponses{1, 2, 3, 5}, 55},
		{"partial credit", CategoryResponses{5, 2, 0}, 47},
		{"single", CategoryResponses{3}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreCategoryEmpty(t *testing.T) {
	_, err := ScoreCategory(nil)
	assert.ErrorIs(t, err, ErrDivisionUndefined)
	_, err = ScoreCategory(CategoryResponses{})
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestScoreCategoryOrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(6)
		in := make(CategoryResponses, n)
		for j := range in {
			in[j] = Response(rng.Intn(6))
		}
		want, err := ScoreCategory(in)
		require.NoError(t, err)

		shuffled := append(CategoryResponses(nil), in...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := ScoreCategory(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestScoreTechnicalCategory(t *testing.T) {
	correct := []int{1, 1, 2}
	tests := []struct {
		name     string
		selected []int
		want     CategoryResponses
	}{
		{"all correct", []int{1, 1, 2}, CategoryResponses{5, 5, 5}},
		{"all wrong", []int{0, 3, 1}, CategoryResponses{2, 2, 2}},
		{"none selected", []int{NoSelection, NoSelection, NoSelection}, CategoryResponses{0, 0, 0}},
		{"one of each", []int{1, 0, NoSelection}, CategoryResponses{5, 2, 0}},
		{"option zero is a selection", []int{0, 0, 0}, CategoryResponses{2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreTechnicalCategory(tt.selected, correct)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreTechnicalCategoryBucketsDistinct(t *testing.T) {
	got, err := ScoreTechnicalCategory([]int{0, 1, NoSelection}, []int{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, CorrectScore, got[0])
	assert.Equal(t, AttemptedScore, got[1])
	assert.Equal(t, Unanswered, got[2])
	assert.NotEqual(t, got[0], got[1])
	assert.NotEqual(t, got[1], got[2])
}

func TestScoreTechnicalCategoryLengthMismatch(t *testing.T) {
	_, err := ScoreTechnicalCategory([]int{1}, []int{1, 2})
	assert.Error(t, err)
}

func TestScoreSection(t *testing.T) {
	got, err := ScoreSection([]int{60, 40, 60, 41})
	require.NoError(t, err)
	assert.Equal(t, 50, got)

	got, err = ScoreSection([]int{60, 40, 60, 42})
	require.NoError(t, err)
	assert.Equal(t, 51, got, "half rounds up")

	_, err = ScoreSection(nil)
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestScoreOverallSectionParity(t *testing.T) {
	// Six WISCAR categories at 0 weigh as much as one section, not six categories.
	got, err := ScoreOverall(100, 100, []int{0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 67, got)

	// WISCAR mean stays unrounded until the final average: (50+50+50.5)/3 = 50.17.
	got, err = ScoreOverall(50, 50, []int{50, 50, 50, 50, 50, 53})
	require.NoError(t, err)
	assert.Equal(t, 50, got)

	_, err = ScoreOverall(50, 50, nil)
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestScoreOverallMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		psych := []int{rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101)}
		tech := []int{rng.Intn(101), rng.Intn(101), rng.Intn(101)}
		wiscar := []int{rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101)}
		before := overallOf(t, psych, tech, wiscar)

		all := [][]int{psych, tech, wiscar}
		group := all[rng.Intn(3)]
		idx := rng.Intn(len(group))
		if group[idx] == 100 {
			continue
		}
		group[idx] += 1 + rng.Intn(100-group[idx])
		after := overallOf(t, psych, tech, wiscar)
		assert.GreaterOrEqual(t, after, before)
	}
}

func overallOf(t *testing.T, psych, tech, wiscar []int) int {
	t.Helper()
	p, err := ScoreSection(psych)
	require.NoError(t, err)
	te, err := ScoreSection(tech)
	require.NoError(t, err)
	o, err := ScoreOverall(p, te, wiscar)
	require.NoError(t, err)
	return o
}

func TestClassifyRecommendation(t *testing.T) {
	tests := []struct {
		overall int
		want    Recommendation
	}{
		{100, RecommendationStrongFit},
		{75, RecommendationStrongFit},
		{74, RecommendationPotentialFit},
		{55, RecommendationPotentialFit},
		{54, RecommendationPoorFit},
		{0, RecommendationPoorFit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRecommendation(tt.overall), "overall=%d", tt.overall)
	}
}

func TestRecommendationEnum(t *testing.T) {
	for _, r := range []Recommendation{RecommendationStrongFit, RecommendationPotentialFit, RecommendationPoorFit} {
		assert.True(t, r.Valid())
		assert.NotEmpty(t, r.Status())
	}
	assert.False(t, Recommendation("GREAT_FIT").Valid())
	assert.Equal(t, -1, Recommendation("GREAT_FIT").Level())
	assert.Less(t, RecommendationStrongFit.Level(), RecommendationPoorFit.Level())
}
