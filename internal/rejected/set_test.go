package rejected

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/painminer/internal/domain"
)

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	input := `# Threads that yielded zero accepted comments
# Total: 2

https://example.com/r/smallbusiness/comments/aaa/
https://example.com/r/smallbusiness/comments/bbb/
`
	set, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("https://example.com/r/smallbusiness/comments/aaa/"))
	assert.False(t, set.Contains("# Threads that yielded zero accepted comments"))
}

func TestEncodeParseRoundTrip(t *testing.T) {
	set := NewSet()
	set.Add("https://example.com/t/zzz")
	set.Add("https://example.com/t/aaa")

	var buf bytes.Buffer
	require.NoError(t, set.Encode(&buf, 1, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "new this run: 1")
	// sorted body
	assert.Less(t, strings.Index(out, "/t/aaa"), strings.Index(out, "/t/zzz"))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, set, parsed)
}

func candidates(urls ...string) []domain.ThreadCandidate {
	out := make([]domain.ThreadCandidate, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.ThreadCandidate{URL: u})
	}
	return out
}

func TestFilterPreservesRankOrder(t *testing.T) {
	set := NewSet()
	set.Add("b")
	set.Add("d")

	kept, removed := set.Filter(candidates("a", "b", "c", "d", "e"))

	assert.Equal(t, candidates("a", "c", "e"), kept)
	assert.Equal(t, candidates("b", "d"), removed)
}

func TestReinstateTopsUpToMinimum(t *testing.T) {
	kept := candidates("a", "b")
	removed := candidates("x", "y", "z")

	got := Reinstate(kept, removed, 4)
	assert.Equal(t, candidates("a", "b", "x", "y"), got)

	// Already enough survivors: nothing reinstated.
	assert.Equal(t, candidates("a", "b"), Reinstate(candidates("a", "b"), removed, 2))

	// Not enough removed to reach the minimum: reinstate them all.
	got = Reinstate(candidates("a"), candidates("x"), 10)
	assert.Equal(t, candidates("a", "x"), got)
}
