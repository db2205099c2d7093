// Package classifier implements the pain-narrative scoring and
// classification pipeline: text quality filtering, hard-negative filtering,
// cheap pre-rank scoring, and the strict multi-gate classifier.
package classifier

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	wordRe          = regexp.MustCompile(`[A-Za-z']+`)
	firstPersonRe   = regexp.MustCompile(`\b(i|i'm|i’ve|ive|i've|me|my|mine|we|our|us)\b`)
	secondPersonRe  = regexp.MustCompile(`\b(you|your|you're|u)\b`)
	topicTokenRe    = regexp.MustCompile(`[a-z]{4,}`)
)

// Sentences splits text on sentence punctuation and drops empty fragments.
func Sentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CountSentenceMarks counts runs of sentence-ending punctuation. Used by the
// cheap length filter; a trailing period counts even when the split would
// yield a single fragment.
func CountSentenceMarks(text string) int {
	return len(sentenceSplitRe.FindAllString(text, -1))
}

// Words extracts alphabetic words (apostrophes included).
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// FirstPersonCount counts first-person pronoun hits in lowercased text.
func FirstPersonCount(lower string) int {
	return len(firstPersonRe.FindAllString(lower, -1))
}

// SecondPersonCount counts second-person pronoun hits in lowercased text.
func SecondPersonCount(lower string) int {
	return len(secondPersonRe.FindAllString(lower, -1))
}

// topicTokens extracts the set of words of length >= 4 from lowercased text.
func topicTokens(lower string) map[string]struct{} {
	tokens := topicTokenRe.FindAllString(lower, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// nonEmptyLines splits text on newlines and drops blank lines.
func nonEmptyLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// roundScore rounds to one decimal place; all exposed scores use this.
func roundScore(s float64) float64 {
	return math.Round(s*10) / 10
}

// containsAny reports whether any of the substrings occurs in lower.
func containsAny(lower string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// anyMatch reports whether any pattern in the set matches lower.
func anyMatch(patterns []*regexp.Regexp, lower string) bool {
	for _, p := range patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// countMatches counts how many patterns in the set match lower (each pattern
// contributes at most once).
func countMatches(patterns []*regexp.Regexp, lower string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(lower) {
			n++
		}
	}
	return n
}
