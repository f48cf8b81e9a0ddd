// Package provider implements the transcript-fetch and video-metadata
// boundary of the pipeline. The YouTube implementation scrapes the watch
// page for the caption track advertised in the embedded player response,
// then downloads and parses the timed-text document.
package provider

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/transcript-pipeline/internal/fetch"
	"github.com/jonathan/transcript-pipeline/internal/types"
)

// Provider is the boundary the pipeline depends on. Tests substitute fakes.
type Provider interface {
	// Transcript returns the ordered caption segments for a video, or an
	// error (NoTranscriptError when captions are unavailable or disabled).
	Transcript(ctx context.Context, videoID string) ([]types.Segment, error)
	// Metadata returns title/author/thumbnail for a video via oEmbed.
	Metadata(ctx context.Context, videoID string) (*types.VideoMetadata, error)
}

// NoTranscriptError indicates the video has no usable caption track.
type NoTranscriptError struct {
	VideoID string
}

func (e *NoTranscriptError) Error() string {
	return fmt.Sprintf("Transcript is disabled on this video (%s)", e.VideoID)
}

// playerResponseMarker precedes the embedded JSON on watch pages.
const playerResponseMarker = "ytInitialPlayerResponse"

// YouTube fetches transcripts and metadata from youtube.com.
type YouTube struct {
	// WatchBase and OembedBase exist so tests can point the provider at a
	// local server. Production code leaves them at the defaults.
	WatchBase  string
	OembedBase string

	opts       *fetch.Options
	useBrowser bool
	verbose    bool
}

// Option configures a YouTube provider.
type Option func(*YouTube)

// WithFetchOptions overrides the HTTP fetch options.
func WithFetchOptions(opts *fetch.Options) Option {
	return func(y *YouTube) { y.opts = opts }
}

// WithBrowserFallback enables headless-browser rendering when the plain
// HTTP fetch of the watch page yields no player response.
func WithBrowserFallback(enabled bool) Option {
	return func(y *YouTube) { y.useBrowser = enabled }
}

// WithVerbose enables provider debug logging.
func WithVerbose(verbose bool) Option {
	return func(y *YouTube) { y.verbose = verbose }
}

// NewYouTube creates a provider with the given options.
func NewYouTube(options ...Option) *YouTube {
	y := &YouTube{
		WatchBase:  "https://www.youtube.com/watch",
		OembedBase: "https://www.youtube.com/oembed",
		opts:       fetch.DefaultOptions(),
	}
	for _, opt := range options {
		opt(y)
	}
	return y
}

// captionTrack is the slice of the player response the provider cares about.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// timedText mirrors the caption XML document referenced by a track.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// Transcript implements Provider.
func (y *YouTube) Transcript(ctx context.Context, videoID string) ([]types.Segment, error) {
	watchURL := fmt.Sprintf("%s?v=%s", y.WatchBase, url.QueryEscape(videoID))

	page, err := fetch.URL(ctx, watchURL, y.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch page: %w", err)
	}

	html := page.Body
	tracks, err := extractCaptionTracks(html)
	if err != nil && y.useBrowser {
		if y.verbose {
			log.Printf("[PROVIDER] No player response over HTTP for %s, retrying with browser", videoID)
		}
		if rendered, berr := fetch.WithBrowser(ctx, watchURL, y.opts.Timeout, y.verbose); berr == nil {
			tracks, err = extractCaptionTracks(rendered)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, &NoTranscriptError{VideoID: videoID}
	}

	track := pickTrack(tracks)
	if y.verbose {
		log.Printf("[PROVIDER] Using caption track lang=%s kind=%s for %s", track.LanguageCode, track.Kind, videoID)
	}

	doc, err := fetch.URL(ctx, track.BaseURL, y.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load caption track: %w", err)
	}

	return parseTimedText(doc.Body)
}

// Metadata implements Provider using the public oEmbed endpoint.
func (y *YouTube) Metadata(ctx context.Context, videoID string) (*types.VideoMetadata, error) {
	oembedURL := fmt.Sprintf("%s?url=%s&format=json",
		y.OembedBase,
		url.QueryEscape("http://www.youtube.com/watch?v="+videoID))

	var payload struct {
		Title     string `json:"title"`
		Author    string `json:"author_name"`
		Thumbnail string `json:"thumbnail_url"`
	}
	if err := fetch.JSON(ctx, oembedURL, &payload, y.opts); err != nil {
		return nil, fmt.Errorf("oembed lookup failed: %w", err)
	}

	return &types.VideoMetadata{
		Title:     payload.Title,
		Author:    payload.Author,
		Thumbnail: payload.Thumbnail,
	}, nil
}

// extractCaptionTracks locates the player response JSON inside the watch
// page scripts and returns its caption track list.
func extractCaptionTracks(html string) ([]captionTrack, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse watch page: %w", err)
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if strings.Contains(text, playerResponseMarker) {
			script = text
			return false
		}
		return true
	})
	if script == "" {
		return nil, fmt.Errorf("player response not found on watch page")
	}

	idx := strings.Index(script, playerResponseMarker)
	brace := strings.Index(script[idx:], "{")
	if brace < 0 {
		return nil, fmt.Errorf("player response marker without payload")
	}

	// The decoder stops after the first complete JSON value, so the
	// trailing script text is ignored.
	var pr playerResponse
	dec := json.NewDecoder(strings.NewReader(script[idx+brace:]))
	if err := dec.Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}

	return pr.Captions.Renderer.CaptionTracks, nil
}

// pickTrack prefers a manually-authored English track, then any English
// track, then the first one advertised.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if t.LanguageCode == "en" && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == "en" {
			return t
		}
	}
	return tracks[0]
}

// parseTimedText converts a caption XML document into ordered segments.
// Segment text keeps its HTML entities; normalization decodes them later.
func parseTimedText(body string) ([]types.Segment, error) {
	var doc timedText
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse caption document: %w", err)
	}

	segments := make([]types.Segment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(t.Body)
		if text == "" {
			continue
		}
		segments = append(segments, types.Segment{
			Text:     text,
			Start:    t.Start,
			Duration: t.Duration,
		})
	}
	return segments, nil
}
