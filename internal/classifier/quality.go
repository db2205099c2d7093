package classifier

import "strings"

// Quality heuristic thresholds.
const (
	fragmentWordLimit     = 4
	fragmentSentenceMin   = 10
	fragmentRatioLimit    = 0.5
	fragmentLineMin       = 8
	diversityWordMin      = 140
	diversityRatioCeiling = 0.28
)

// QualityFilter detects spam and word-salad text. It is pure and
// deterministic: the same input always yields the same reason.
type QualityFilter struct{}

// NewQualityFilter creates a text quality filter.
func NewQualityFilter() *QualityFilter {
	return &QualityFilter{}
}

// Check returns an empty string when the text looks coherent, or the first
// matching problem reason. Checks run in a fixed order; first match wins.
func (q *QualityFilter) Check(text string) string {
	sentences := Sentences(text)
	words := Words(text)
	if len(sentences) == 0 || len(words) == 0 {
		return "no meaningful content"
	}

	if len(sentences) >= fragmentSentenceMin {
		short := 0
		for _, s := range sentences {
			if len(Words(s)) <= fragmentWordLimit {
				short++
			}
		}
		if float64(short)/float64(len(sentences)) >= fragmentRatioLimit {
			return "fragmented, too many short sentences"
		}
	}

	lines := nonEmptyLines(text)
	if len(lines) >= fragmentLineMin {
		short := 0
		for _, line := range lines {
			if len(Words(line)) <= fragmentWordLimit {
				short++
			}
		}
		if float64(short)/float64(len(lines)) >= fragmentRatioLimit {
			return "fragmented lines"
		}
	}

	if len(words) >= diversityWordMin {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) <= diversityRatioCeiling {
			return "low lexical diversity"
		}
	}

	lower := strings.ToLower(text)
	if containsAny(lower, nonsenseMarkers) {
		return "nonsense markers"
	}

	return ""
}
