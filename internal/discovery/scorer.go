package discovery

import (
	"regexp"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/painminer/internal/classifier"
	"github.com/jonesrussell/painminer/internal/domain"
	"github.com/jonesrussell/painminer/internal/logger"
)

// Tier weights and signal bonuses.
const (
	highValueWeight     = 10
	mediumValueWeight   = 5
	lowValueWeight      = 3
	businessWeight      = 7
	questionTitleBonus  = 2
	firstPersonBonus    = 2
	detailedBodyBonus   = 1
	detailedBodyMinLen  = 200
	softMetaPenalty     = 8
	noMatchEngagementX  = 2
	relevanceMultiplier = 2.5
	upvoteClampMax      = 3000
	upvoteDivisor       = 250.0
	commentClampMax     = 400
	commentDivisor      = 20.0
)

var firstPersonContextRe = regexp.MustCompile(`\b(i|my|we|our)\b`)

// Stats counts discovery outcomes for one scoring pass.
type Stats struct {
	TotalChecked       int
	Matched            int
	SkippedLowComments int
	SkippedKeywords    int
	SkippedMetaThreads int
	SkippedNoMatch     int
}

// lexiconEntry ties a matcher pattern index back to its keyword and tier.
type lexiconEntry struct {
	keyword string
	tier    domain.KeywordTier
	weight  int
}

// ThreadScorer ranks raw thread summaries by pain relevance. All tier
// keywords are matched in a single Aho-Corasick pass; scoring itself is
// pure, with no side effects.
type ThreadScorer struct {
	matcher     *ahocorasick.Matcher
	entries     []lexiconEntry
	minComments int
	baseURL     string
	logger      logger.Logger
}

// NewThreadScorer builds the keyword automaton. minComments is the minimum
// comment-count filter; baseURL prefixes thread permalinks.
func NewThreadScorer(minComments int, baseURL string, log logger.Logger) *ThreadScorer {
	if log == nil {
		log = logger.NewNop()
	}

	tiers := []struct {
		keywords []string
		tier     domain.KeywordTier
		weight   int
	}{
		{highValueKeywords, domain.TierHigh, highValueWeight},
		{mediumValueKeywords, domain.TierMedium, mediumValueWeight},
		{lowValueKeywords, domain.TierLow, lowValueWeight},
		{businessProblemKeywords, domain.TierBusiness, businessWeight},
	}

	var entries []lexiconEntry
	var patterns []string
	for _, t := range tiers {
		for _, kw := range t.keywords {
			entries = append(entries, lexiconEntry{keyword: kw, tier: t.tier, weight: t.weight})
			patterns = append(patterns, kw)
		}
	}

	s := &ThreadScorer{
		matcher:     ahocorasick.NewStringMatcher(patterns),
		entries:     entries,
		minComments: minComments,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		logger:      log,
	}
	log.Debug("thread scorer initialized", logger.Int("keywords", len(entries)))
	return s
}

// Rank scores every summary and returns the survivors sorted by combined
// score, highest first. The sort is stable: ties preserve discovery order.
func (s *ThreadScorer) Rank(summaries []domain.ThreadSummary) ([]domain.ThreadCandidate, Stats) {
	stats := Stats{}
	candidates := make([]domain.ThreadCandidate, 0, len(summaries))

	for _, summary := range summaries {
		stats.TotalChecked++

		candidate, verdict := s.score(summary)
		switch verdict {
		case skipLowComments:
			stats.SkippedLowComments++
		case skipShowOff:
			stats.SkippedKeywords++
		case skipMetaThread:
			stats.SkippedMetaThreads++
		case skipNoMatch:
			stats.SkippedNoMatch++
		case kept:
			stats.Matched++
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})

	s.logger.Info("thread discovery ranked",
		logger.Int("checked", stats.TotalChecked),
		logger.Int("matched", stats.Matched),
		logger.Int("skipped_low_comments", stats.SkippedLowComments),
		logger.Int("skipped_show_off", stats.SkippedKeywords),
		logger.Int("skipped_meta", stats.SkippedMetaThreads),
		logger.Int("skipped_no_match", stats.SkippedNoMatch),
	)

	return candidates, stats
}

type scoreVerdict int

const (
	kept scoreVerdict = iota
	skipLowComments
	skipShowOff
	skipMetaThread
	skipNoMatch
)

func (s *ThreadScorer) score(summary domain.ThreadSummary) (domain.ThreadCandidate, scoreVerdict) {
	searchable := strings.ToLower(summary.Title + " " + strings.TrimSpace(summary.SelfText))

	if summary.CommentCount < s.minComments {
		return domain.ThreadCandidate{}, skipLowComments
	}

	for _, kw := range skipKeywords {
		if strings.Contains(searchable, kw) {
			return domain.ThreadCandidate{}, skipShowOff
		}
	}

	for _, kw := range classifier.HardSkipThreadKeywords {
		if strings.Contains(searchable, kw) {
			return domain.ThreadCandidate{}, skipMetaThread
		}
	}

	score := 0
	var matched []domain.MatchedKeyword

	// One pass over the text; hits map back to lexicon entries. Iterating
	// entries in lexicon order keeps the matched-keyword list ordered by
	// tier, the way downstream reporting expects.
	hitSet := make(map[int]struct{})
	for _, hit := range s.matcher.Match([]byte(searchable)) {
		hitSet[hit] = struct{}{}
	}
	for idx, entry := range s.entries {
		if _, ok := hitSet[idx]; !ok {
			continue
		}
		score += entry.weight
		matched = append(matched, domain.MatchedKeyword{Tier: entry.tier, Keyword: entry.keyword})
	}

	if strings.Contains(summary.Title, "?") {
		score += questionTitleBonus
		matched = append(matched, domain.MatchedKeyword{Tier: domain.TierSignal, Keyword: "question_title"})
	}

	if firstPersonContextRe.MatchString(searchable) {
		score += firstPersonBonus
		matched = append(matched, domain.MatchedKeyword{Tier: domain.TierSignal, Keyword: "first_person_context"})
	}

	if len(strings.TrimSpace(summary.SelfText)) >= detailedBodyMinLen {
		score += detailedBodyBonus
		matched = append(matched, domain.MatchedKeyword{Tier: domain.TierSignal, Keyword: "detailed_context"})
	}

	for _, kw := range softMetaKeywords {
		if strings.Contains(searchable, kw) {
			score -= softMetaPenalty
			matched = append(matched, domain.MatchedKeyword{Tier: domain.TierPenalty, Keyword: "meta_thread"})
			break
		}
	}

	// High-engagement threads stay in even without keyword hits; the
	// per-comment filters decide later.
	if score <= 0 && summary.CommentCount < s.minComments*noMatchEngagementX {
		return domain.ThreadCandidate{}, skipNoMatch
	}

	candidate := domain.ThreadCandidate{
		ThreadSummary:   summary,
		URL:             s.baseURL + summary.Permalink,
		RelevanceScore:  score,
		CombinedScore:   combinedScore(score, summary.Upvotes, summary.CommentCount),
		MatchedKeywords: matched,
	}
	return candidate, kept
}

// combinedScore blends pain relevance (dominant) with clamped engagement.
func combinedScore(relevance, upvotes, comments int) float64 {
	return float64(relevance)*relevanceMultiplier +
		float64(clamp(upvotes, 0, upvoteClampMax))/upvoteDivisor +
		float64(clamp(comments, 0, commentClampMax))/commentDivisor
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
