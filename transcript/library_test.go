package transcript

import (
	"context"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoClient struct {
	video       *youtube.Video
	videoErr    error
	segments    youtube.VideoTranscript
	transErr    error
	requestLang string
}

func (f *fakeVideoClient) GetVideoContext(ctx context.Context, id string) (*youtube.Video, error) {
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return f.video, nil
}

func (f *fakeVideoClient) GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error) {
	f.requestLang = lang
	if f.transErr != nil {
		return nil, f.transErr
	}
	return f.segments, nil
}

func newTestLibraryProvider(client videoClient, languages ...string) *LibraryProvider {
	return &LibraryProvider{
		client:    client,
		languages: languages,
		timeout:   time.Second,
		logger:    logrus.New(),
	}
}

func tracks(codes ...string) []youtube.CaptionTrack {
	out := make([]youtube.CaptionTrack, 0, len(codes))
	for _, code := range codes {
		out = append(out, youtube.CaptionTrack{LanguageCode: code})
	}
	return out
}

func TestLibraryProvider_Fetch(t *testing.T) {
	client := &fakeVideoClient{
		video: &youtube.Video{ID: "dQw4w9WgXcQ", CaptionTracks: tracks("fr", "bn")},
		segments: youtube.VideoTranscript{
			{Text: "first line"},
			{Text: "second line"},
			{Text: "third"},
		},
	}

	p := newTestLibraryProvider(client, "en", "bn", "hi")
	text, err := p.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "first line second line third", text)
	assert.Equal(t, "bn", client.requestLang)
}

func TestLibraryProvider_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeVideoClient
		wantErr string
	}{
		{
			name:    "video lookup fails",
			client:  &fakeVideoClient{videoErr: errors.New("video unavailable")},
			wantErr: "failed to load video abcdefghijk: video unavailable",
		},
		{
			name:    "captions disabled",
			client:  &fakeVideoClient{video: &youtube.Video{}},
			wantErr: "no captions available for video abcdefghijk",
		},
		{
			name:    "no preferred language",
			client:  &fakeVideoClient{video: &youtube.Video{CaptionTracks: tracks("de")}},
			wantErr: "no transcript found for video abcdefghijk",
		},
		{
			name: "transcript download fails",
			client: &fakeVideoClient{
				video:    &youtube.Video{CaptionTracks: tracks("en")},
				transErr: errors.New("transcript is disabled on this video"),
			},
			wantErr: "failed to fetch en transcript",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestLibraryProvider(tt.client, "en")
			_, err := p.Fetch(context.Background(), "abcdefghijk")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPickLanguage(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []youtube.CaptionTrack
		preferred []string
		want      string
		wantOK    bool
	}{
		{"first preference wins", tracks("hi", "en"), []string{"en", "hi"}, "en", true},
		{"falls through preferences", tracks("hi"), []string{"en", "bn", "hi"}, "hi", true},
		{"regional variant", tracks("en-GB"), []string{"en"}, "en-GB", true},
		{"exact beats regional", tracks("en-US", "en"), []string{"en"}, "en", true},
		{"case insensitive", tracks("EN"), []string{"en"}, "EN", true},
		{"no match", tracks("de"), []string{"en"}, "", false},
		{"no tracks", nil, []string{"en"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickLanguage(tt.tracks, tt.preferred)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
