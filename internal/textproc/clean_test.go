package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanRemovesTimestamps(t *testing.T) {
	got := Clean("intro [0:15] middle [12:03] end")
	assert.Equal(t, "intro middle end", got)
}

func TestCleanRemovesAnnotations(t *testing.T) {
	got := Clean("hello (applause) world [Music] done <i>italic</i>")
	assert.Equal(t, "hello world done italic", got)
}

func TestCleanRemovesFillerWords(t *testing.T) {
	got := Clean("so um I was uh thinking you know about it")
	assert.Equal(t, "so I was thinking about it", got)
}

func TestCleanKeepsFillerInsideWords(t *testing.T) {
	// "umbrella" contains "um" but is not filler.
	got := Clean("the umbrella is ahead")
	assert.Equal(t, "the umbrella is ahead", got)
}

func TestCleanDecodesEntities(t *testing.T) {
	got := Clean("Tom &amp; Jerry don&#39;t stop")
	assert.Equal(t, "Tom & Jerry don't stop", got)
}

func TestCleanStripsEncodedMarkup(t *testing.T) {
	// Entities decode first, so encoded tags are stripped like literal ones.
	got := Clean("before &lt;b&gt;bold&lt;/b&gt; after")
	assert.Equal(t, "before bold after", got)
}

func TestCleanRemovesNoteGlyphs(t *testing.T) {
	got := Clean("♪ lyrics here ♫")
	assert.Equal(t, "lyrics here", got)
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("  spaced \t out\n\ntext  ")
	assert.Equal(t, "spaced out text", got)
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"plain sentence with no noise",
		"um hello (aside) [0:01] &amp; goodbye",
		"♪ music ♪ you know it",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestCleanNeverGrows(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"&amp;&amp;&amp;",
		"&#39;&#39;",
		"malformed entity &#zz; stays",
		strings.Repeat("word um ", 100),
	}
	for _, in := range inputs {
		assert.LessOrEqual(t, len(Clean(in)), len(in), "input %q", in)
	}
}

func TestCleanMalformedInputReturnsString(t *testing.T) {
	// Broken entities and stray brackets must not panic.
	for _, in := range []string{"&#x;", "&unknown;", "[[[", ")))", "<<>>", "\xff\xfe"} {
		_ = Clean(in)
	}
}

func TestJoinSegments(t *testing.T) {
	got := JoinSegments([]string{"first part", "second part"})
	assert.Equal(t, "first part second part", got)
}
