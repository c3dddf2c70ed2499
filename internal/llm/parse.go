package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSONResponse extracts JSON from an LLM response, handling markdown
// code blocks. This centralizes the repeated JSON parsing logic across the
// extraction and analysis stages.
func ParseJSONResponse[T any](response string) (T, error) {
	var result T

	// Strip markdown code blocks
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return result, fmt.Errorf("parse JSON: %w", err)
	}

	return result, nil
}

// ParseJSONResponseToMap is a non-generic version that returns map[string]any.
// Use this when you don't know the exact structure ahead of time.
func ParseJSONResponseToMap(response string) (map[string]any, error) {
	return ParseJSONResponse[map[string]any](response)
}
