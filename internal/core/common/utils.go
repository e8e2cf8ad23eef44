package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSON cleans and unmarshals a JSON string into a type T.
// It handles common LLM quirks like surrounding markdown, extra text,
// trailing commas or single quotes.
func ParseJSON[T any](response string) (T, error) {
	var zero T
	jsonStr := ExtractObject(response)
	if jsonStr == "" {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
		return result, nil
	}

	repaired, err := jsonrepair.JSONRepair(jsonStr)
	if err != nil {
		return zero, fmt.Errorf("failed to repair JSON: %w\nData: %s", err, jsonStr)
	}
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, repaired)
	}

	return result, nil
}

// ExtractObject returns the text between the first '{' and the last '}'.
// An unterminated object is returned from its '{' so it can still be
// repaired.
func ExtractObject(response string) string {
	start := strings.IndexByte(response, '{')
	if start == -1 {
		return ""
	}
	end := strings.LastIndexByte(response, '}')
	if end < start {
		return response[start:]
	}
	return response[start : end+1]
}
