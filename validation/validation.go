package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/wahid1099/generate-qa/config"
	"github.com/wahid1099/generate-qa/errors"
	"github.com/wahid1099/generate-qa/models"
)

// Checked in order; the first pattern that matches wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:watch\?v=)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:shorts/)([a-zA-Z0-9_-]{11})`),
}

type Validator struct {
	config *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// ExtractVideoID returns the 11-character video identifier embedded in rawURL.
func (v *Validator) ExtractVideoID(rawURL string) (string, error) {
	const op = "Validator.ExtractVideoID"

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", errors.InvalidInput(op, nil, "Invalid YouTube URL format")
}

// ValidateGenerateRequest trims the URL in place and checks the count bounds.
func (v *Validator) ValidateGenerateRequest(req *models.GenerateRequest) error {
	const op = "Validator.ValidateGenerateRequest"

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return errors.InvalidInput(op, nil, "YouTube URL is required")
	}

	if req.Count < v.config.QA.MinCount || req.Count > v.config.QA.MaxCount {
		return errors.InvalidInput(op, nil, fmt.Sprintf(
			"Question count must be between %d and %d", v.config.QA.MinCount, v.config.QA.MaxCount,
		))
	}

	return nil
}

// ParseCount decodes the optional count field of a request body. A missing or
// null value yields the configured default. Integers and numeric strings are
// accepted; anything else is a client error.
func (v *Validator) ParseCount(raw json.RawMessage) (int, error) {
	const op = "Validator.ParseCount"

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return v.config.QA.DefaultCount, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if count, err := strconv.Atoi(n.String()); err == nil {
			return count, nil
		}
		return 0, errors.InvalidInput(op, nil, "Question count must be an integer")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if count, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return count, nil
		}
	}

	return 0, errors.InvalidInput(op, nil, "Question count must be an integer")
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	RequireJSON      bool
}

// ValidateRequest validates HTTP requests
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	if opts.RequireJSON {
		if contentType := r.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
			return errors.InvalidInput(op, nil, "Content-Type must be application/json")
		}
	}

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.InvalidInput(op, nil, "Request body too large")
	}

	return nil
}
