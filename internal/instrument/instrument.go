// Package instrument loads questionnaire definitions: sections, questions,
// answer keys and the guidance text attached to each recommendation tier.
package instrument

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/fitcheck/internal/assessment"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the built-in instrument used when none is configured.
const DefaultName = "stem-coordinator"

// Instrument is a complete questionnaire definition.
type Instrument struct {
	Name             string                                     `yaml:"name"`
	Version          int                                        `yaml:"version"`
	Title            string                                     `yaml:"title"`
	Role             string                                     `yaml:"role"`
	Tagline          string                                     `yaml:"tagline"`
	Description      string                                     `yaml:"description"`
	Duration         string                                     `yaml:"duration"`
	CareerOutcomes   []string                                   `yaml:"career_outcomes"`
	SuccessTraits    []string                                   `yaml:"success_traits"`
	Sections         []Section                                  `yaml:"sections"`
	Guidance         map[assessment.Recommendation]GuidanceText `yaml:"guidance"`
	AlternativeRoles []string                                   `yaml:"alternative_roles"`
}

// Kind selects how a section's answers are collected and scored.
type Kind string

const (
	KindLikert Kind = "likert"
	KindChoice Kind = "choice"
)

// Section is one top-level group of categories.
type Section struct {
	ID          assessment.SectionID `yaml:"id"`
	Title       string               `yaml:"title"`
	ReportTitle string               `yaml:"report_title"`
	Kind        Kind                 `yaml:"kind"`
	Scale       Scale                `yaml:"scale"`
	Categories  []Category           `yaml:"categories"`
}

// Scale labels the ends of a Likert scale.
type Scale struct {
	Low  string `yaml:"low"`
	High string `yaml:"high"`
}

// Category is a named sub-scale with a fixed question list.
type Category struct {
	Key         string     `yaml:"key"`
	Title       string     `yaml:"title"`
	ReportLabel string     `yaml:"report_label"`
	Questions   []Question `yaml:"questions"`
}

// Question is a Likert prompt, or a multiple-choice item when Options is set.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options,omitempty"`
	Correct int      `yaml:"correct,omitempty"`
}

// GuidanceText is the advice shown for one recommendation tier.
type GuidanceText struct {
	Headline  string   `yaml:"headline"`
	Narrative string   `yaml:"narrative"`
	NextSteps []string `yaml:"next_steps"`
}

// LoadBuiltin loads a built-in instrument by name.
func LoadBuiltin(name string) (*Instrument, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("instrument.LoadBuiltin: unknown instrument %q: %w", name, err)
	}
	inst, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("instrument.LoadBuiltin: %q: %w", name, err)
	}
	return inst, nil
}

// Load resolves nameOrPath as a YAML file when it has a .yaml/.yml suffix and
// as a built-in name otherwise.
func Load(nameOrPath string) (*Instrument, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultName
	}
	if !strings.HasSuffix(nameOrPath, ".yaml") && !strings.HasSuffix(nameOrPath, ".yml") {
		return LoadBuiltin(nameOrPath)
	}
	data, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("instrument.Load: %w", err)
	}
	inst, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("instrument.Load: %s: %w", nameOrPath, err)
	}
	return inst, nil
}

// Parse decodes and validates an instrument definition.
func Parse(data []byte) (*Instrument, error) {
	var inst Instrument
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &inst, nil
}

// List returns the names of all available built-in instruments.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Validate reports every structural problem in the definition.
func (inst *Instrument) Validate() error {
	var errs []error
	if inst.Name == "" {
		errs = append(errs, errors.New("name: required"))
	}
	if len(inst.Sections) != len(assessment.SectionOrder) {
		errs = append(errs, fmt.Errorf("sections: expected %d, got %d", len(assessment.SectionOrder), len(inst.Sections)))
	}
	for i, sec := range inst.Sections {
		if i < len(assessment.SectionOrder) && sec.ID != assessment.SectionOrder[i] {
			errs = append(errs, fmt.Errorf("sections[%d]: expected %q, got %q", i, assessment.SectionOrder[i], sec.ID))
		}
		if sec.Kind != KindLikert && sec.Kind != KindChoice {
			errs = append(errs, fmt.Errorf("sections[%d].kind: invalid %q", i, sec.Kind))
		}
		if len(sec.Categories) == 0 {
			errs = append(errs, fmt.Errorf("sections[%d].categories: at least one required", i))
		}
		seen := make(map[string]bool)
		for j, cat := range sec.Categories {
			prefix := fmt.Sprintf("sections[%d].categories[%d]", i, j)
			switch {
			case cat.Key == "":
				errs = append(errs, fmt.Errorf("%s.key: required", prefix))
			case seen[cat.Key]:
				errs = append(errs, fmt.Errorf("%s.key: duplicate %q", prefix, cat.Key))
			}
			seen[cat.Key] = true
			if len(cat.Questions) == 0 {
				errs = append(errs, fmt.Errorf("%s.questions: at least one required", prefix))
			}
			for k, q := range cat.Questions {
				qp := fmt.Sprintf("%s.questions[%d]", prefix, k)
				if q.Prompt == "" {
					errs = append(errs, fmt.Errorf("%s.prompt: required", qp))
				}
				if sec.Kind != KindChoice {
					continue
				}
				if len(q.Options) < 2 {
					errs = append(errs, fmt.Errorf("%s.options: at least two required", qp))
				}
				if q.Correct < 0 || q.Correct >= len(q.Options) {
					errs = append(errs, fmt.Errorf("%s.correct: %d out of range", qp, q.Correct))
				}
			}
		}
	}
	for _, rec := range []assessment.Recommendation{
		assessment.RecommendationStrongFit,
		assessment.RecommendationPotentialFit,
		assessment.RecommendationPoorFit,
	} {
		if _, ok := inst.Guidance[rec]; !ok {
			errs = append(errs, fmt.Errorf("guidance: missing %s", rec))
		}
	}
	return errors.Join(errs...)
}

// Section returns the section with id, or nil.
func (inst *Instrument) Section(id assessment.SectionID) *Section {
	for i := range inst.Sections {
		if inst.Sections[i].ID == id {
			return &inst.Sections[i]
		}
	}
	return nil
}

// Layout returns the category shape used for validation and scoring.
func (inst *Instrument) Layout() assessment.Layout {
	layout := make(assessment.Layout, 0, len(inst.Sections))
	for _, sec := range inst.Sections {
		spec := assessment.SectionSpec{ID: sec.ID, Title: sec.reportTitle()}
		for _, cat := range sec.Categories {
			spec.Categories = append(spec.Categories, assessment.CategorySpec{
				Key:    cat.Key,
				Title:  cat.reportLabel(),
				Length: len(cat.Questions),
			})
		}
		layout = append(layout, spec)
	}
	return layout
}

// AnswerKey returns the correct option index of every question in a choice category.
func (s *Section) AnswerKey(categoryKey string) ([]int, bool) {
	for _, cat := range s.Categories {
		if cat.Key != categoryKey {
			continue
		}
		key := make([]int, len(cat.Questions))
		for i, q := range cat.Questions {
			key[i] = q.Correct
		}
		return key, true
	}
	return nil, false
}

// Engine builds a scoring engine carrying this instrument's layout and guidance.
func (inst *Instrument) Engine(strict bool) *assessment.Engine {
	guidance := make(map[assessment.Recommendation]assessment.Guidance, len(inst.Guidance))
	for rec, g := range inst.Guidance {
		guidance[rec] = assessment.Guidance{
			Headline:  g.Headline,
			Narrative: strings.TrimSpace(g.Narrative),
			NextSteps: g.NextSteps,
		}
	}
	return &assessment.Engine{
		Layout:           inst.Layout(),
		Guidance:         guidance,
		AlternativeRoles: inst.AlternativeRoles,
		Strict:           strict,
	}
}

// QuestionCount returns the total number of questions across all sections.
func (inst *Instrument) QuestionCount() int {
	n := 0
	for _, sec := range inst.Sections {
		for _, cat := range sec.Categories {
			n += len(cat.Questions)
		}
	}
	return n
}

func (s *Section) reportTitle() string {
	if s.ReportTitle != "" {
		return s.ReportTitle
	}
	return s.Title
}

func (c *Category) reportLabel() string {
	if c.ReportLabel != "" {
		return c.ReportLabel
	}
	return c.Title
}
