// Package session walks a respondent through an instrument one category at a
// time and accumulates the answers into an assessment record.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
)

// Stage is a step of the linear walk-through.
type Stage int

const (
	StageIntro        Stage = iota // Role description, not yet started
	StagePsychometric              // Psychometric Likert items
	StageTechnical                 // Multiple-choice items
	StageWISCAR                    // WISCAR Likert items
	StageResults                   // All sections folded into the record
)

var stageNames = [...]string{"intro", "psychometric", "technical", "wiscar", "results"}

func (s Stage) String() string {
	if s < StageIntro || s > StageResults {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// SectionID returns the assessment section answered during s.
func (s Stage) SectionID() (assessment.SectionID, bool) {
	switch s {
	case StagePsychometric:
		return assessment.SectionPsychometric, true
	case StageTechnical:
		return assessment.SectionTechnical, true
	case StageWISCAR:
		return assessment.SectionWISCAR, true
	}
	return "", false
}

var (
	// ErrWrongStage is returned when an operation is not valid in the current stage.
	ErrWrongStage = errors.New("session: operation not valid in this stage")
	// ErrIncomplete is returned by Next while the current category has unanswered questions.
	ErrIncomplete = errors.New("session: current category is incomplete")
)

// Session is the state of one walk-through. It is not safe for concurrent use.
type Session struct {
	ID string

	inst    *instrument.Instrument
	stage   Stage
	catIdx  int
	current []int
	pending assessment.SectionResponses
	record  assessment.Record
}

// New returns a session at the intro stage.
func New(inst *instrument.Instrument) *Session {
	return &Session{
		ID:   uuid.NewString(),
		inst: inst,
	}
}

// Instrument returns the instrument being answered.
func (s *Session) Instrument() *instrument.Instrument { return s.inst }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// Progress is the fraction of stages completed, 0 at intro and 1 at results.
func (s *Session) Progress() float64 {
	return float64(s.stage) / float64(StageResults)
}

// Start leaves the intro and opens the first psychometric category.
func (s *Session) Start() error {
	if s.stage != StageIntro {
		return fmt.Errorf("start at %s: %w", s.stage, ErrWrongStage)
	}
	s.enter(StagePsychometric)
	return nil
}

// Section returns the section being answered, or nil outside the question stages.
func (s *Session) Section() *instrument.Section {
	id, ok := s.stage.SectionID()
	if !ok {
		return nil
	}
	return s.inst.Section(id)
}

// Category returns the category being answered, or nil outside the question stages.
func (s *Session) Category() *instrument.Category {
	sec := s.Section()
	if sec == nil || s.catIdx >= len(sec.Categories) {
		return nil
	}
	return &sec.Categories[s.catIdx]
}

// CategoryIndex returns the position of the current category within its section.
func (s *Session) CategoryIndex() int { return s.catIdx }

// Answers returns a copy of the answers given so far in the current category.
// Likert items hold 0 and choice items hold assessment.NoSelection until answered.
func (s *Session) Answers() []int {
	return append([]int(nil), s.current...)
}

// Answer records value for question q of the current category. Likert items
// take 1..5; choice items take an option index.
func (s *Session) Answer(q, value int) error {
	sec, cat := s.Section(), s.Category()
	if sec == nil || cat == nil {
		return fmt.Errorf("answer at %s: %w", s.stage, ErrWrongStage)
	}
	if q < 0 || q >= len(cat.Questions) {
		return fmt.Errorf("answer: question %d outside [0,%d)", q, len(cat.Questions))
	}
	if sec.Kind == instrument.KindChoice {
		if value < 0 || value >= len(cat.Questions[q].Options) {
			return fmt.Errorf("answer: option %d outside [0,%d)", value, len(cat.Questions[q].Options))
		}
	} else if r := assessment.Response(value); r < assessment.MinLikert || r > assessment.MaxLikert {
		return fmt.Errorf("answer: value %d outside [%d,%d]", value, assessment.MinLikert, assessment.MaxLikert)
	}
	s.current[q] = value
	return nil
}

// CanProceed reports whether every question of the current category is answered.
func (s *Session) CanProceed() bool {
	if s.Category() == nil {
		return false
	}
	for _, v := range s.current {
		if !s.answered(v) {
			return false
		}
	}
	return true
}

// Next moves to the following category. After the last category of a section
// the section is folded into the record and the next stage begins.
func (s *Session) Next() error {
	sec, cat := s.Section(), s.Category()
	if sec == nil || cat == nil {
		return fmt.Errorf("next at %s: %w", s.stage, ErrWrongStage)
	}
	if !s.CanProceed() {
		return fmt.Errorf("next: %s.%s: %w", sec.ID, cat.Key, ErrIncomplete)
	}

	resp, err := s.fold(sec, cat)
	if err != nil {
		return err
	}
	s.pending[cat.Key] = resp

	if s.catIdx+1 < len(sec.Categories) {
		s.catIdx++
		s.current = s.blank()
		return nil
	}
	s.record.SetSection(sec.ID, s.pending)
	s.enter(s.stage + 1)
	return nil
}

// Record returns the completed record. It is only available at the results stage.
func (s *Session) Record() (*assessment.Record, error) {
	if s.stage != StageResults {
		return nil, fmt.Errorf("record at %s: %w", s.stage, ErrWrongStage)
	}
	rec := s.record
	return &rec, nil
}

func (s *Session) enter(stage Stage) {
	s.stage = stage
	s.catIdx = 0
	s.pending = assessment.SectionResponses{}
	s.current = s.blank()
}

// blank returns the unanswered slate for the current category.
func (s *Session) blank() []int {
	sec, cat := s.Section(), s.Category()
	if cat == nil {
		return nil
	}
	out := make([]int, len(cat.Questions))
	if sec.Kind == instrument.KindChoice {
		for i := range out {
			out[i] = assessment.NoSelection
		}
	}
	return out
}

func (s *Session) answered(v int) bool {
	if s.Section().Kind == instrument.KindChoice {
		return v >= 0
	}
	return v != int(assessment.Unanswered)
}

func (s *Session) fold(sec *instrument.Section, cat *instrument.Category) (assessment.CategoryResponses, error) {
	if sec.Kind == instrument.KindChoice {
		key, _ := sec.AnswerKey(cat.Key)
		resp, err := assessment.ScoreTechnicalCategory(s.current, key)
		if err != nil {
			return nil, fmt.Errorf("next: %s.%s: %w", sec.ID, cat.Key, err)
		}
		return resp, nil
	}
	resp := make(assessment.CategoryResponses, len(s.current))
	for i, v := range s.current {
		resp[i] = assessment.Response(v)
	}
	return resp, nil
}
