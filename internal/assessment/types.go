// Package assessment defines the response record, the scoring engine and the
// results structure produced for a completed career-fit assessment.
package assessment

// Response is a single scored answer in [0,5]. Zero means the item was not answered.
type Response int

const (
	Unanswered Response = 0
	MinLikert  Response = 1
	MaxLikert  Response = 5
)

// Valid reports whether r lies in the scoring range [0,5].
func (r Response) Valid() bool {
	return r >= Unanswered && r <= MaxLikert
}

// CategoryResponses is the ordered list of responses for one category.
type CategoryResponses []Response

// SectionResponses maps a category key to its responses.
type SectionResponses map[string]CategoryResponses

// Record holds the responses for all three sections of an assessment.
type Record struct {
	Psychometric SectionResponses `json:"psychometric" yaml:"psychometric"`
	Technical    SectionResponses `json:"technical" yaml:"technical"`
	WISCAR       SectionResponses `json:"wiscar" yaml:"wiscar"`
}

// Section returns the responses stored for id, or nil for an unknown section.
func (r *Record) Section(id SectionID) SectionResponses {
	switch id {
	case SectionPsychometric:
		return r.Psychometric
	case SectionTechnical:
		return r.Technical
	case SectionWISCAR:
		return r.WISCAR
	}
	return nil
}

// SetSection replaces the responses stored for id.
func (r *Record) SetSection(id SectionID, resp SectionResponses) {
	switch id {
	case SectionPsychometric:
		r.Psychometric = resp
	case SectionTechnical:
		r.Technical = resp
	case SectionWISCAR:
		r.WISCAR = resp
	}
}

// CategorySpec fixes the key, display title and question count of a category.
type CategorySpec struct {
	Key    string
	Title  string
	Length int
}

// SectionSpec lists the categories of one section in presentation order.
type SectionSpec struct {
	ID         SectionID
	Title      string
	Categories []CategorySpec
}

// Layout is the full shape of an instrument, sections in fixed order.
type Layout []SectionSpec

// Result is the top-level output of an evaluation.
type Result struct {
	Tool           string          `json:"tool"`
	Version        string          `json:"version"`
	AssessmentID   string          `json:"assessment_id,omitempty"`
	Instrument     string          `json:"instrument"`
	Input          Input           `json:"input"`
	Overall        int             `json:"overall"`
	Recommendation Recommendation  `json:"recommendation"`
	Status         string          `json:"status"`
	Sections       []SectionResult `json:"sections"`
	Guidance       Guidance        `json:"guidance"`
}

// Input describes where the responses came from.
type Input struct {
	RecordFile string `json:"record_file,omitempty"`
	RecordHash string `json:"record_hash,omitempty"`
	Strict     bool   `json:"strict"`
}

// SectionResult is the score of one section with its category breakdown.
type SectionResult struct {
	ID         SectionID        `json:"id"`
	Title      string           `json:"title"`
	Score      int              `json:"score"`
	Categories []CategoryResult `json:"categories"`
}

// CategoryResult is the percentage score of one category.
type CategoryResult struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

// Guidance is the canned advice attached to a recommendation tier.
type Guidance struct {
	Headline         string   `json:"headline"`
	Narrative        string   `json:"narrative"`
	NextSteps        []string `json:"next_steps"`
	AlternativeRoles []string `json:"alternative_roles"`
}

// SectionByID returns the section result for id, or nil.
func (r *Result) SectionByID(id SectionID) *SectionResult {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i]
		}
	}
	return nil
}
