package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedTextBody = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="1.5">hello there &amp;amp; welcome</text>
  <text start="1.5" dur="2.0">second segment</text>
  <text start="3.5" dur="1.0">  </text>
  <text start="4.5" dur="2.5">final segment</text>
</transcript>`

// newFakeYouTube serves a watch page whose player response points the
// caption track at the same test server.
func newFakeYouTube(t *testing.T, withCaptions bool) (*httptest.Server, *YouTube) {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, _ *http.Request) {
		tracks := ""
		if withCaptions {
			tracks = fmt.Sprintf(
				`{"captionTracks":[{"baseUrl":"%s/api/timedtext","languageCode":"en","kind":""}]}`,
				srv.URL)
		} else {
			tracks = `{}`
		}
		page := fmt.Sprintf(`<html><head>
<script>var something = 1;</script>
<script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":%s}};var more = 2;</script>
</head><body></body></html>`, tracks)
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(timedTextBody))
	})
	mux.HandleFunc("/oembed", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("url"), "watch?v=")
		_, _ = w.Write([]byte(`{"title":"A Video","author_name":"An Author","thumbnail_url":"http://img/0.jpg"}`))
	})

	yt := NewYouTube()
	yt.WatchBase = srv.URL + "/watch"
	yt.OembedBase = srv.URL + "/oembed"
	return srv, yt
}

func TestTranscriptFetchesSegments(t *testing.T) {
	_, yt := newFakeYouTube(t, true)

	segments, err := yt.Transcript(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, segments, 3, "blank segments are dropped")

	assert.Equal(t, "hello there &amp; welcome", segments[0].Text, "entities stay encoded for the cleaner")
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 1.5, segments[0].Duration)
	assert.Equal(t, "final segment", segments[2].Text)
}

func TestTranscriptDisabled(t *testing.T) {
	_, yt := newFakeYouTube(t, false)

	_, err := yt.Transcript(context.Background(), "abc123")
	require.Error(t, err)

	var noTranscript *NoTranscriptError
	require.ErrorAs(t, err, &noTranscript)
	assert.Equal(t, "abc123", noTranscript.VideoID)
	assert.Contains(t, err.Error(), "Transcript is disabled")
}

func TestTranscriptNoPlayerResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	yt := NewYouTube()
	yt.WatchBase = srv.URL + "/watch"

	_, err := yt.Transcript(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player response not found")
}

func TestMetadata(t *testing.T) {
	_, yt := newFakeYouTube(t, true)

	meta, err := yt.Metadata(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "A Video", meta.Title)
	assert.Equal(t, "An Author", meta.Author)
	assert.Equal(t, "http://img/0.jpg", meta.Thumbnail)
}

func TestPickTrackPrefersManualEnglish(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "auto", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "french", LanguageCode: "fr"},
		{BaseURL: "manual", LanguageCode: "en"},
	}
	assert.Equal(t, "manual", pickTrack(tracks).BaseURL)

	// Without a manual English track, the auto-generated one wins.
	assert.Equal(t, "auto", pickTrack(tracks[:2]).BaseURL)

	// Otherwise the first advertised track is used.
	assert.Equal(t, "french", pickTrack(tracks[1:2]).BaseURL)
}

func TestParseTimedTextMalformed(t *testing.T) {
	_, err := parseTimedText("definitely not xml")
	require.Error(t, err)
}
