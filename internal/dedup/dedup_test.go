package dedup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Losing Money  ", "losing money"},
		{"strips urls", "check https://example.com/page for details", "check for details"},
		{"collapses whitespace", "too\n\nmany   spaces\there", "too many spaces here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("identical text here", "identical text here"))
	assert.Equal(t, 1.0, Similarity("Same WORDS", "same   words"))

	low := Similarity("my payroll software keeps double charging employees",
		"zoning board rejected the patio permit twice")
	assert.Less(t, low, 0.5)
}

// A candidate that repeats an accepted text with a promotional sentence
// bolted on must be caught by the window.
func TestTooSimilarAppendedPromo(t *testing.T) {
	base := "I have been running my shop for six years and the last twelve months have been brutal. " +
		"Suppliers doubled their prices, two of my best employees quit, and I genuinely do not know " +
		"how to keep the margins from collapsing further."
	variant := base + " Check out my new tool at https://example.com today!"

	d := New(0.75)
	assert.False(t, d.TooSimilar(base))
	d.Add(base)

	assert.True(t, d.TooSimilar(variant))
	assert.False(t, d.TooSimilar("completely unrelated text about a zoning permit dispute downtown"))
}

func TestWindowEviction(t *testing.T) {
	d := New(1.0) // only exact matches count
	first := "the very first accepted text"
	d.Add(first)
	assert.True(t, d.TooSimilar(first))

	for i := 0; i < DefaultWindowSize; i++ {
		d.Add(fmt.Sprintf("filler accepted text number %d", i))
	}

	assert.Equal(t, DefaultWindowSize, d.Len())
	assert.False(t, d.TooSimilar(first), "oldest entry should have been evicted")
	assert.True(t, d.TooSimilar("filler accepted text number 49"))
}
