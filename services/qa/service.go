package qa

import (
	"context"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/completion"
	"github.com/wahid1099/generate-qa/errors"
	"github.com/wahid1099/generate-qa/models"
	"github.com/wahid1099/generate-qa/transcript"
	"github.com/wahid1099/generate-qa/validation"
)

type service struct {
	provider  transcript.Provider
	gateway   completion.Gateway
	validator *validation.Validator
	config    Config
	logger    *logrus.Logger
}

// NewService creates a new QA generation service
func NewService(
	provider transcript.Provider,
	gateway completion.Gateway,
	validator *validation.Validator,
	config Config,
	logger *logrus.Logger,
) Service {
	return &service{
		provider:  provider,
		gateway:   gateway,
		validator: validator,
		config:    config,
		logger:    logger,
	}
}

func (s *service) Generate(ctx context.Context, req models.GenerateRequest) (*models.QAResult, error) {
	const op = "QAService.Generate"

	if err := s.validator.ValidateGenerateRequest(&req); err != nil {
		return nil, err
	}

	videoID, err := s.validator.ExtractVideoID(req.URL)
	if err != nil {
		return nil, err
	}

	logger := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"video_id": videoID,
		"count":    req.Count,
	})

	text, err := s.provider.Fetch(ctx, videoID)
	if err != nil {
		logger.WithError(err).Warn("Transcript fetch failed")
		return nil, errors.Internal(op, pkgerrors.Wrap(err, "transcript unavailable"), "Could not fetch transcript: "+err.Error())
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < s.config.MinTranscriptLength {
		return nil, errors.InvalidInput(op, nil, "Transcript too short to generate meaningful questions")
	}

	chunks := ChunkText(text, s.config.ChunkSize)
	if len(chunks) == 0 {
		return nil, errors.InvalidInput(op, nil, "Transcript too short to generate meaningful questions")
	}
	if len(chunks) > 1 {
		logger.WithFields(logrus.Fields{
			"chunks":    len(chunks),
			"discarded": len(chunks) - 1,
		}).Debug("Using first transcript chunk only")
	}

	raw, err := s.gateway.Complete(ctx, BuildPrompt(chunks[0], req.Count), s.config.SystemPrompt)
	if err != nil {
		logger.WithError(err).Error("Completion request failed")
		return nil, errors.Internal(op, err, "Server error: "+err.Error())
	}

	result, err := ValidateResponse(raw)
	if err != nil {
		logger.WithError(err).Warn("Model returned unusable output")
		return nil, err
	}

	logger.WithField("pairs", result.Count).Info("Generated QA pairs")
	return result, nil
}
