package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vbonduro/nutrisnap/internal/domain"
)

var (
	// ErrEmptyResponse means the model call succeeded but returned no text.
	ErrEmptyResponse = errors.New("no data returned from the model")
	// ErrMalformedResponse means the model text does not parse as the
	// declared output structure.
	ErrMalformedResponse = errors.New("failed to process nutrition data")
)

// ParseResult parses raw model output as a NutritionResult. It checks
// structure only: a JSON object, correctly typed fields, and every required
// field present. Numeric ranges are taken as given.
func ParseResult(raw string) (*domain.NutritionResult, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: response is null", ErrMalformedResponse)
	}

	for _, name := range Schema.Required {
		if v, ok := fields[name]; !ok || string(v) == "null" {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedResponse, name)
		}
	}

	var result domain.NutritionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &result, nil
}
