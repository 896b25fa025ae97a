package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	inst, err := instrument.LoadBuiltin(instrument.DefaultName)
	require.NoError(t, err)
	return New(inst)
}

// fillCategory answers every question of the current category. Likert items
// get likert; choice items get the correct option when correct is set and a
// wrong one otherwise.
func fillCategory(t *testing.T, s *Session, likert int, correct bool) {
	t.Helper()
	sec, cat := s.Section(), s.Category()
	require.NotNil(t, cat)
	for i, q := range cat.Questions {
		v := likert
		if sec.Kind == instrument.KindChoice {
			v = q.Correct
			if !correct {
				v = (q.Correct + 1) % len(q.Options)
			}
		}
		require.NoError(t, s.Answer(i, v))
	}
}

func completeStage(t *testing.T, s *Session, likert int, correct bool) {
	t.Helper()
	stage := s.Stage()
	for s.Stage() == stage {
		fillCategory(t, s, likert, correct)
		require.NoError(t, s.Next())
	}
}

func TestNewSession(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, StageIntro, s.Stage())
	assert.Zero(t, s.Progress())
	assert.Nil(t, s.Section())
	assert.Nil(t, s.Category())
	assert.False(t, s.CanProceed())
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, s.ID, newSession(t).ID)
}

func TestStartOnlyFromIntro(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	assert.Equal(t, StagePsychometric, s.Stage())
	assert.Equal(t, "interest", s.Category().Key)
	assert.ErrorIs(t, s.Start(), ErrWrongStage)
}

func TestAnswerAtIntro(t *testing.T) {
	s := newSession(t)
	assert.ErrorIs(t, s.Answer(0, 3), ErrWrongStage)
	assert.ErrorIs(t, s.Next(), ErrWrongStage)
}

func TestAnswerValidation(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	assert.Error(t, s.Answer(0, 0))
	assert.Error(t, s.Answer(0, 6))
	assert.Error(t, s.Answer(-1, 3))
	assert.Error(t, s.Answer(len(s.Category().Questions), 3))
	assert.NoError(t, s.Answer(0, 3))
	assert.Equal(t, 3, s.Answers()[0])
}

func TestAnswersIsCopy(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	a := s.Answers()
	a[0] = 4
	assert.Zero(t, s.Answers()[0])
}

func TestNextRequiresCompleteCategory(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer(0, 4))
	assert.False(t, s.CanProceed())
	assert.ErrorIs(t, s.Next(), ErrIncomplete)

	fillCategory(t, s, 4, true)
	assert.True(t, s.CanProceed())
	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.CategoryIndex())
	assert.Equal(t, "personality", s.Category().Key)
	assert.Zero(t, s.Answers()[0])
}

func TestTechnicalStageAnswers(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	completeStage(t, s, 3, true)
	require.Equal(t, StageTechnical, s.Stage())

	for _, v := range s.Answers() {
		assert.Equal(t, assessment.NoSelection, v)
	}
	// Option 0 is a valid choice, not "unanswered".
	for i := range s.Category().Questions {
		require.NoError(t, s.Answer(i, 0))
	}
	assert.True(t, s.CanProceed())
	assert.Error(t, s.Answer(0, len(s.Category().Questions[0].Options)))
}

func TestProgress(t *testing.T) {
	s := newSession(t)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	assert.InDelta(t, want[0], s.Progress(), 1e-9)
	require.NoError(t, s.Start())
	for i := 1; i < len(want); i++ {
		assert.InDelta(t, want[i], s.Progress(), 1e-9, s.Stage().String())
		if s.Stage() != StageResults {
			completeStage(t, s, 4, true)
		}
	}
}

func TestRecordOnlyAtResults(t *testing.T) {
	s := newSession(t)
	_, err := s.Record()
	assert.ErrorIs(t, err, ErrWrongStage)
	require.NoError(t, s.Start())
	_, err = s.Record()
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestFullWalkThrough(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	completeStage(t, s, 5, true)
	completeStage(t, s, 5, false)
	completeStage(t, s, 5, true)
	require.Equal(t, StageResults, s.Stage())
	assert.Nil(t, s.Category())
	assert.ErrorIs(t, s.Next(), ErrWrongStage)

	rec, err := s.Record()
	require.NoError(t, err)
	assert.NoError(t, assessment.ValidateRecord(rec, s.Instrument().Layout()))
	assert.Equal(t, assessment.CategoryResponses{5, 5, 5, 5}, rec.Psychometric["motivation"])
	assert.Equal(t, assessment.CategoryResponses{2, 2, 2}, rec.Technical["aptitude"])

	res, err := s.Instrument().Engine(true).Evaluate(rec)
	require.NoError(t, err)
	assert.Equal(t, 100, res.SectionByID(assessment.SectionPsychometric).Score)
	assert.Equal(t, 40, res.SectionByID(assessment.SectionTechnical).Score)
	assert.Equal(t, 80, res.Overall)
	assert.Equal(t, assessment.RecommendationStrongFit, res.Recommendation)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "wiscar", StageWISCAR.String())
	assert.Equal(t, "stage(9)", Stage(9).String())
	id, ok := StageTechnical.SectionID()
	assert.True(t, ok)
	assert.Equal(t, assessment.SectionTechnical, id)
	_, ok = StageResults.SectionID()
	assert.False(t, ok)
}
