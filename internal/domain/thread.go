// Package domain defines the core data model shared by discovery,
// classification, and output.
package domain

// ThreadSummary is the raw thread listing entry returned by discovery.
// Produced once per discovery call; never mutated.
type ThreadSummary struct {
	Title        string
	SelfText     string
	Upvotes      int
	CommentCount int
	Permalink    string
}

// KeywordTier labels which lexicon tier a matched keyword came from.
type KeywordTier string

// Keyword tiers, ordered by weight.
const (
	TierHigh     KeywordTier = "HIGH"
	TierMedium   KeywordTier = "MED"
	TierLow      KeywordTier = "LOW"
	TierBusiness KeywordTier = "BIZ"
	TierSignal   KeywordTier = "SIG"
	TierPenalty  KeywordTier = "PENALTY"
)

// MatchedKeyword is one keyword (or synthetic signal) that contributed to a
// thread's relevance score, tagged with its tier.
type MatchedKeyword struct {
	Tier    KeywordTier
	Keyword string
}

func (m MatchedKeyword) String() string {
	return string(m.Tier) + ":" + m.Keyword
}

// ThreadCandidate is a scored, rankable thread. Created by the thread scorer
// and consumed once by the collection loop.
type ThreadCandidate struct {
	ThreadSummary

	URL             string
	RelevanceScore  int
	CombinedScore   float64
	MatchedKeywords []MatchedKeyword
}
