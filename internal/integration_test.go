package internal

import (
	"reflect"
	"testing"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
	"github.com/dshills/fitcheck/internal/record"
	"github.com/dshills/fitcheck/internal/session"
)

// walk answers a whole session from doc, the same way a respondent would
// have filled in the response file.
func walk(t *testing.T, inst *instrument.Instrument, doc record.Document) *assessment.Record {
	t.Helper()
	s := session.New(inst)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for s.Stage() != session.StageResults {
		sec, cat := s.Section(), s.Category()
		values := doc[string(sec.ID)][cat.Key]
		for i, v := range values {
			if v == nil {
				t.Fatalf("%s.%s[%d]: sessions cannot skip questions", sec.ID, cat.Key, i)
			}
			if err := s.Answer(i, *v); err != nil {
				t.Fatalf("%s.%s[%d]: %v", sec.ID, cat.Key, i, err)
			}
		}
		if err := s.Next(); err != nil {
			t.Fatalf("next at %s.%s: %v", sec.ID, cat.Key, err)
		}
	}
	rec, err := s.Record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return rec
}

func TestSessionMatchesResponseFile(t *testing.T) {
	inst := loadInstrument(t)
	for _, name := range []string{"strong.yaml", "mixed.yaml"} {
		t.Run(name, func(t *testing.T) {
			f, err := record.Load(responsePath(name), inst, true)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			fromFile, err := f.Document.Record(inst)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			fromSession := walk(t, inst, f.Document)

			if !reflect.DeepEqual(fromFile, fromSession) {
				t.Errorf("session record differs from file record:\nfile:    %+v\nsession: %+v", fromFile, fromSession)
			}

			engine := inst.Engine(true)
			a, err := engine.Evaluate(fromFile)
			if err != nil {
				t.Fatal(err)
			}
			b, err := engine.Evaluate(fromSession)
			if err != nil {
				t.Fatal(err)
			}
			if a.Overall != b.Overall || a.Recommendation != b.Recommendation {
				t.Errorf("file scored %d/%s, session scored %d/%s", a.Overall, a.Recommendation, b.Overall, b.Recommendation)
			}
		})
	}
}

func TestEngineSharedAcrossEvaluations(t *testing.T) {
	inst := loadInstrument(t)
	engine := inst.Engine(true)
	seen := map[assessment.Recommendation]bool{}
	for _, name := range []string{"strong.yaml", "mixed.yaml", "empty.json"} {
		f, err := record.Load(responsePath(name), inst, true)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		rec, err := f.Document.Record(inst)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		res, err := engine.Evaluate(rec)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		seen[res.Recommendation] = true
		// Mutating one result's guidance must not leak into the engine.
		res.Guidance.NextSteps[0] = "changed"
		res.Guidance.AlternativeRoles[0] = "changed"
	}
	if len(seen) != 2 {
		t.Errorf("expected two distinct tiers, got %v", seen)
	}
	for _, g := range engine.Guidance {
		for _, s := range g.NextSteps {
			if s == "changed" {
				t.Error("engine guidance was mutated through a result")
			}
		}
	}
	if engine.AlternativeRoles[0] == "changed" {
		t.Error("engine alternative roles were mutated through a result")
	}
}
