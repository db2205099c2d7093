// Package dedup suppresses near-duplicate accepted texts using a bounded
// recent-history window.
package dedup

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultWindowSize bounds how many recent texts are compared. True
// duplicates cluster temporally, so full-history comparison buys nothing.
const DefaultWindowSize = 50

var (
	urlRe        = regexp.MustCompile(`http[s]?://\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips URLs, collapses whitespace, and lowercases, so the
// similarity ratio compares wording rather than formatting.
func Normalize(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(strings.ToLower(text))
}

// Similarity returns the character block-matching ratio in [0, 1] between
// the normalized forms of two texts. Order-sensitive, not token-based.
func Similarity(a, b string) float64 {
	na := strings.Split(Normalize(a), "")
	nb := strings.Split(Normalize(b), "")
	return difflib.NewMatcher(na, nb).Ratio()
}

// Deduplicator keeps the last N accepted normalized texts and rejects new
// texts too similar to any of them.
type Deduplicator struct {
	threshold float64
	maxSize   int
	window    []string
}

// New creates a deduplicator with the given similarity threshold and the
// default window size.
func New(threshold float64) *Deduplicator {
	return &Deduplicator{
		threshold: threshold,
		maxSize:   DefaultWindowSize,
		window:    make([]string, 0, DefaultWindowSize),
	}
}

// TooSimilar reports whether text's similarity ratio against any window
// member reaches the threshold.
func (d *Deduplicator) TooSimilar(text string) bool {
	normalized := strings.Split(Normalize(text), "")
	for _, existing := range d.window {
		ratio := difflib.NewMatcher(strings.Split(existing, ""), normalized).Ratio()
		if ratio >= d.threshold {
			return true
		}
	}
	return false
}

// Add appends an accepted text to the window, evicting the oldest entry
// when the bound is reached. Callers check TooSimilar first; Add never
// compares.
func (d *Deduplicator) Add(text string) {
	if len(d.window) == d.maxSize {
		d.window = d.window[1:]
	}
	d.window = append(d.window, Normalize(text))
}

// Len returns the current window size.
func (d *Deduplicator) Len() int {
	return len(d.window)
}
