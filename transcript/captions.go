package transcript

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/wahid1099/generate-qa/config"
)

// CaptionsProvider lists a video's caption tracks through the YouTube Data
// API and downloads the first one. The payload is returned as-is.
type CaptionsProvider struct {
	service    *ytapi.Service
	format     string
	timeout    time.Duration
	configured bool
	logger     *logrus.Logger
}

// NewCaptionsProvider builds the API client. Extra options are appended after
// the API key option, which lets callers point the client at another endpoint.
func NewCaptionsProvider(ctx context.Context, cfg config.TranscriptConfig, log *logrus.Logger, opts ...option.ClientOption) (*CaptionsProvider, error) {
	configured := cfg.YouTubeAPIKey != "" || len(opts) > 0

	var clientOpts []option.ClientOption
	if cfg.YouTubeAPIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.YouTubeAPIKey))
	} else if len(opts) == 0 {
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	}
	clientOpts = append(clientOpts, opts...)

	service, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create YouTube API client")
	}

	return &CaptionsProvider{
		service:    service,
		format:     cfg.CaptionFormat,
		timeout:    cfg.Timeout,
		configured: configured,
		logger:     log,
	}, nil
}

func (p *CaptionsProvider) Fetch(ctx context.Context, videoID string) (string, error) {
	if !p.configured {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	list, err := p.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return "", errors.Wrapf(err, "failed to list caption tracks for video %s", videoID)
	}
	if len(list.Items) == 0 {
		return "", errors.Errorf("no caption tracks for video %s", videoID)
	}

	track := list.Items[0]
	p.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"track_id": track.Id,
		"tracks":   len(list.Items),
	}).Debug("Downloading caption track")

	call := p.service.Captions.Download(track.Id)
	if p.format != "" {
		call = call.Tfmt(p.format)
	}

	resp, err := call.Context(ctx).Download()
	if err != nil {
		return "", errors.Wrapf(err, "failed to download caption track %s", track.Id)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read caption track %s", track.Id)
	}

	return string(body), nil
}
