package transcript

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/config"
)

// ErrNotConfigured is returned at fetch time when the provider's credential
// was absent at startup.
var ErrNotConfigured = errors.New("transcript provider credential is not configured")

// Provider produces the full transcript text for a video identifier.
type Provider interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// New returns the provider selected by cfg.Provider.
func New(ctx context.Context, cfg config.TranscriptConfig, log *logrus.Logger) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderLibrary:
		return NewLibraryProvider(cfg, log), nil
	case config.ProviderCaptionsAPI:
		return NewCaptionsProvider(ctx, cfg, log)
	default:
		return nil, errors.Errorf("unknown transcript provider %q", cfg.Provider)
	}
}
