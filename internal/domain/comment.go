package domain

// CommentRaw is a single comment as returned by the content source, with the
// metadata the filters need. The reply tree has already been flattened.
type CommentRaw struct {
	ID            string
	Body          string
	Author        string
	Distinguished string // "moderator", "admin", or empty
	Stickied      bool
	Score         int
	Permalink     string
}

// RankedCandidate is a comment that survived the basic and hard-negative
// filters, carrying its pre-rank score. Lives only for one thread's
// processing pass.
type RankedCandidate struct {
	Comment      CommentRaw
	Body         string
	PreRankScore float64
	Signals      []string
}
