package transcript

import (
	"context"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/config"
)

// videoClient is the part of youtube.Client the library provider uses.
type videoClient interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

// LibraryProvider fetches captions in-process through the YouTube player
// endpoints, trying each configured language in order.
type LibraryProvider struct {
	client    videoClient
	languages []string
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewLibraryProvider(cfg config.TranscriptConfig, log *logrus.Logger) *LibraryProvider {
	return &LibraryProvider{
		client:    &youtube.Client{},
		languages: cfg.Languages,
		timeout:   cfg.Timeout,
		logger:    log,
	}
}

func (p *LibraryProvider) Fetch(ctx context.Context, videoID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load video %s", videoID)
	}

	lang, ok := pickLanguage(video.CaptionTracks, p.languages)
	if !ok {
		if len(video.CaptionTracks) == 0 {
			return "", errors.Errorf("no captions available for video %s", videoID)
		}
		return "", errors.Errorf("no transcript found for video %s in languages %v", videoID, p.languages)
	}

	p.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": lang,
	}).Debug("Fetching transcript")

	segments, err := p.client.GetTranscriptCtx(ctx, video, lang)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch %s transcript", lang)
	}

	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}

	return strings.Join(texts, " "), nil
}

// pickLanguage returns the first preferred language with a caption track.
// A track matches exactly or by base language ("en" matches "en-GB").
func pickLanguage(tracks []youtube.CaptionTrack, preferred []string) (string, bool) {
	for _, want := range preferred {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, want) {
				return track.LanguageCode, true
			}
		}
		for _, track := range tracks {
			base, _, _ := strings.Cut(track.LanguageCode, "-")
			if strings.EqualFold(base, want) {
				return track.LanguageCode, true
			}
		}
	}
	return "", false
}
