package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"matchday.fit/fixturecast/internal/schedule"
)

// readPayload decodes an intermediate schedule file. Intermediate files
// are not schema-validated; only publish enforces the v1 schema.
func readPayload(path string) (*schedule.Payload, error) {
	cleaned := strings.TrimSpace(path)
	if cleaned == "" {
		return nil, fmt.Errorf("schedule file path is empty")
	}

	raw, err := os.ReadFile(cleaned)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cleaned, err)
	}

	var payload schedule.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", cleaned, err)
	}
	return &payload, nil
}

func writePayload(path string, payload *schedule.Payload) error {
	cleaned := strings.TrimSpace(path)
	if cleaned == "" {
		return fmt.Errorf("output file path is empty")
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	if err := os.WriteFile(cleaned, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cleaned, err)
	}
	return nil
}

func writeJSONFile(path string, value any) error {
	cleaned := strings.TrimSpace(path)
	if cleaned == "" {
		return fmt.Errorf("output file path is empty")
	}

	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if err := os.WriteFile(cleaned, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cleaned, err)
	}
	return nil
}
