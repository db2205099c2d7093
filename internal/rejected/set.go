// Package rejected tracks thread URLs that yielded zero accepted comments.
// The set is an explicit value passed into and out of the run; the caller
// owns persistence.
package rejected

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonesrussell/painminer/internal/domain"
)

// Set is a cumulative collection of unproductive thread URLs.
type Set map[string]struct{}

// NewSet creates an empty set.
func NewSet() Set {
	return make(Set)
}

// Parse reads the one-URL-per-line text form. Blank lines and lines starting
// with '#' are ignored.
func Parse(r io.Reader) (Set, error) {
	set := NewSet()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse rejected threads: %w", err)
	}
	return set, nil
}

// Contains reports whether url is in the set.
func (s Set) Contains(url string) bool {
	_, ok := s[url]
	return ok
}

// Add inserts url into the set.
func (s Set) Add(url string) {
	s[url] = struct{}{}
}

// Len returns the set size.
func (s Set) Len() int {
	return len(s)
}

// Encode writes the set in its persistent text form: a comment header
// followed by sorted URLs.
func (s Set) Encode(w io.Writer, addedThisRun int, now time.Time) error {
	urls := make([]string, 0, len(s))
	for url := range s {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	header := fmt.Sprintf(
		"# Threads that yielded zero accepted comments; skipped on future runs.\n"+
			"# Cumulative across runs. Last updated: %s\n"+
			"# Total: %d (new this run: %d)\n\n",
		now.Format("2006-01-02 15:04:05"), len(urls), addedThisRun)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write rejected threads header: %w", err)
	}
	for _, url := range urls {
		if _, err := io.WriteString(w, url+"\n"); err != nil {
			return fmt.Errorf("write rejected thread url: %w", err)
		}
	}
	return nil
}

// Filter splits ranked candidates into those not in the set (kept) and
// those previously rejected (removed), preserving rank order in both.
func (s Set) Filter(candidates []domain.ThreadCandidate) (kept, removed []domain.ThreadCandidate) {
	for _, c := range candidates {
		if s.Contains(c.URL) {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, removed
}

// Reinstate re-adds previously rejected candidates, highest-ranked first,
// until kept reaches minSurviving. Filtering an aggressive cumulative set
// must not starve a run of threads.
func Reinstate(kept, removed []domain.ThreadCandidate, minSurviving int) []domain.ThreadCandidate {
	if len(kept) >= minSurviving {
		return kept
	}
	needed := minSurviving - len(kept)
	if needed > len(removed) {
		needed = len(removed)
	}
	return append(kept, removed[:needed]...)
}
