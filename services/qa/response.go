package qa

import (
	"encoding/json"

	"github.com/wahid1099/generate-qa/errors"
	"github.com/wahid1099/generate-qa/models"
)

// ValidateResponse accepts raw model output only when it is a JSON array.
// The elements are not inspected and the raw text is kept as-is.
func ValidateResponse(raw string) (*models.QAResult, error) {
	const op = "QAService.ValidateResponse"

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.Internal(op, err, "AI returned invalid JSON format")
	}

	items, ok := parsed.([]interface{})
	if !ok {
		return nil, errors.Internal(op, nil, "Invalid response format from AI")
	}

	return &models.QAResult{Result: raw, Count: len(items)}, nil
}
