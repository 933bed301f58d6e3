package api

import (
	"encoding/json"
	"io"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/errors"
	"github.com/wahid1099/generate-qa/models"
	"github.com/wahid1099/generate-qa/services/qa"
	"github.com/wahid1099/generate-qa/validation"
)

const maxRequestBody = 1024 * 1024

type QAHandler struct {
	service   qa.Service
	validator *validation.Validator
	logger    *logrus.Logger
}

type generateQARequest struct {
	URL   string          `json:"url"`
	Count json.RawMessage `json:"count"`
}

func NewQAHandler(service qa.Service, validator *validation.Validator, logger *logrus.Logger) *QAHandler {
	return &QAHandler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// HandleGenerateQA handles POST /generate_qa
func (h *QAHandler) HandleGenerateQA(w http.ResponseWriter, r *http.Request) {
	const op = "QAHandler.HandleGenerateQA"

	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: maxRequestBody,
		RequireJSON:      true,
	}); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	body, err := decodeGenerateQARequest(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		respondError(w, r, h.logger, errors.InvalidInput(op, err, "No data provided"))
		return
	}

	count, err := h.validator.ParseCount(body.Count)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.logger.WithContext(r.Context()).WithFields(logrus.Fields{
		"url":   body.URL,
		"count": count,
	}).Info("Received QA generation request")

	result, err := h.service.Generate(r.Context(), models.GenerateRequest{
		URL:   body.URL,
		Count: count,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// decodeGenerateQARequest reads a JSON object with at least one field.
// null, an empty object and non-object bodies are rejected.
func decodeGenerateQARequest(r io.Reader) (*generateQARequest, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New("empty request body")
	}

	var body generateQARequest
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return &body, nil
}
