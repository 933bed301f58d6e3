package qa

import (
	"context"

	"github.com/wahid1099/generate-qa/models"
)

type Service interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.QAResult, error)
}

type Config struct {
	ChunkSize           int
	MinTranscriptLength int
	SystemPrompt        string
}
