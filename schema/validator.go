// Package payloadschema validates weekly schedule JSON documents against
// the embedded v1 schema before they enter the pipeline.
package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"matchday.fit/fixturecast/internal/schedule"
)

//go:embed schedule.schema.json
var scheduleSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateSchedulePayload checks a raw schedule document against the
// schema plus the semantic rules the schema cannot express, and returns
// the decoded payload.
func ValidateSchedulePayload(payload json.RawMessage) (*schedule.Payload, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload JSON: %w", err)
	}

	schemaDoc, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if err := schemaDoc.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize payload JSON: %w", err)
	}

	var doc schedule.Payload
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := validateSemantics(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource("schedule.schema.json", strings.NewReader(scheduleSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		compiled, err := compiler.Compile("schedule.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = compiled
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}

func validateSemantics(doc *schedule.Payload) error {
	if doc == nil {
		return fmt.Errorf("payload is nil")
	}

	if strings.TrimSpace(doc.Source) == "" {
		return fmt.Errorf("source must not be empty")
	}
	if strings.TrimSpace(doc.GeneratedAt) == "" {
		return fmt.Errorf("generated_at must not be empty")
	}

	seenDates := make(map[string]struct{}, len(doc.Schedule))
	for i, day := range doc.Schedule {
		date := strings.TrimSpace(day.Date)
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("schedule[%d].date %q is not YYYY-MM-DD", i, day.Date)
		}
		if _, dup := seenDates[date]; dup {
			return fmt.Errorf("schedule[%d].date %q appears twice", i, day.Date)
		}
		seenDates[date] = struct{}{}

		for j, event := range day.Events {
			if strings.TrimSpace(event.Name) == "" {
				return fmt.Errorf("schedule[%d].events[%d].name must not be empty", i, j)
			}
			if event.StartTimeISO != "" && schedule.ClockFromISO(event.StartTimeISO) == "" {
				return fmt.Errorf("schedule[%d].events[%d].start_time_iso %q has no parseable clock", i, j, event.StartTimeISO)
			}
			for k, channel := range event.Channels {
				if strings.TrimSpace(channel) == "" {
					return fmt.Errorf("schedule[%d].events[%d].channels[%d] must not be blank", i, j, k)
				}
			}
		}
	}

	return nil
}
