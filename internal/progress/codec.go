package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/mathgen/internal/curriculum"
)

const recordSchemaURL = "mathgen://progress-record.json"

const recordSchema = `{
  "type": "object",
  "required": ["grade", "current_topic_index", "days_completed", "history"],
  "properties": {
    "grade": {"type": "string", "minLength": 1},
    "current_topic_index": {"type": "integer", "minimum": 0},
    "days_completed": {"type": "integer", "minimum": 0},
    "topics_order": {"type": "array", "items": {"type": "string"}},
    "history": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["day", "date", "topic", "topic_index"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
          "topic": {"type": "string"},
          "topic_index": {"type": "integer", "minimum": 0},
          "concept_guide_path": {"type": ["string", "null"]},
          "worksheet_path": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func recordValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(recordSchema)))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = c.Compile(recordSchemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode renders a record as 2-space indented JSON.
func Encode(p *Progress) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Decode parses and validates a stored record for grade.
func Decode(grade curriculum.GradeLevel, data []byte) (*Progress, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	v, err := recordValidator()
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	if err := v.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if p.Grade != grade {
		return nil, fmt.Errorf("record belongs to %q", p.Grade)
	}
	if len(p.TopicsOrder) == 0 {
		p.TopicsOrder = curriculum.TopicsForGrade(grade)
	}
	if p.CurrentTopicIndex > len(p.TopicsOrder) {
		return nil, fmt.Errorf("current_topic_index %d exceeds %d topics", p.CurrentTopicIndex, len(p.TopicsOrder))
	}
	if p.History == nil {
		p.History = []DayRecord{}
	}
	return &p, nil
}
