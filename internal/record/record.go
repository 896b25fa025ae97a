// Package record reads response documents and turns them into assessment records.
package record

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
	"github.com/dshills/fitcheck/internal/schema"
)

// Document maps section -> category -> answers as written in a response file.
// Likert answers are values 0..5; technical answers are option indexes. A null
// entry means the question was not answered.
type Document map[string]map[string][]*int

// File holds a loaded response document with its content hash.
type File struct {
	Path     string
	Hash     string
	Document Document
}

// Load reads a YAML or JSON response document from path. In strict mode the
// document must match the instrument's schema exactly.
func Load(path string, inst *instrument.Instrument, strict bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record.Load: %w", err)
	}
	doc, err := Parse(data, inst, strict)
	if err != nil {
		return nil, fmt.Errorf("record.Load: %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return &File{
		Path:     path,
		Hash:     fmt.Sprintf("sha256:%x", h),
		Document: doc,
	}, nil
}

// Parse decodes a response document. YAML is a superset of JSON, so one
// decoder handles both formats.
func Parse(data []byte, inst *instrument.Instrument, strict bool) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parse: empty document")
	}

	// Normalize YAML-decoded values into plain JSON values for schema checks
	// and typed decoding.
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: normalize: %w", err)
	}
	if strict {
		var generic any
		if err := json.Unmarshal(js, &generic); err != nil {
			return nil, fmt.Errorf("parse: normalize: %w", err)
		}
		if err := schema.ValidateDocument(inst, generic); err != nil {
			return nil, err
		}
	}

	var doc Document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}

// Record converts the document into an assessment record. Unanswered Likert
// items become 0. Technical selections are scored against the answer key;
// missing trailing selections count as unanswered and extra ones are ignored.
func (d Document) Record(inst *instrument.Instrument) (*assessment.Record, error) {
	rec := &assessment.Record{}
	for _, sec := range inst.Sections {
		answers, ok := d[string(sec.ID)]
		if !ok {
			continue
		}
		resp := assessment.SectionResponses{}
		for _, cat := range sec.Categories {
			values, ok := answers[cat.Key]
			if !ok {
				continue
			}
			if sec.Kind != instrument.KindChoice {
				resp[cat.Key] = likert(values)
				continue
			}
			key, _ := sec.AnswerKey(cat.Key)
			scored, err := assessment.ScoreTechnicalCategory(selections(values, len(key)), key)
			if err != nil {
				return nil, fmt.Errorf("record: %s.%s: %w", sec.ID, cat.Key, err)
			}
			resp[cat.Key] = scored
		}
		for key, values := range answers {
			if _, known := resp[key]; !known {
				// Unknown categories are carried so strict validation can name them.
				resp[key] = likert(values)
			}
		}
		rec.SetSection(sec.ID, resp)
	}
	return rec, nil
}

func likert(values []*int) assessment.CategoryResponses {
	out := make(assessment.CategoryResponses, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = assessment.Response(*v)
		}
	}
	return out
}

func selections(values []*int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = assessment.NoSelection
		if i < len(values) && values[i] != nil {
			out[i] = *values[i]
		}
	}
	return out
}
