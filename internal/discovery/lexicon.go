// Package discovery scores and ranks candidate source threads by likely
// pain-narrative yield before any per-comment work is done.
package discovery

// High-value keywords: strong pain/problem indicators.
var highValueKeywords = []string{
	"can't", "cannot", "unable", "fail", "failed", "failing",
	"help me", "please help", "need help", "struggling",
	"frustrated", "frustrating", "annoying", "hate",
	"ruined", "disaster", "messed up", "went wrong",
	"what am i doing wrong", "why won't", "why can't",
	"losing money", "losing customers", "going bankrupt",
	"can't afford", "running out", "desperate",
}

// Medium-value keywords: question/help-seeking phrasing.
var mediumValueKeywords = []string{
	"how do i", "how to", "how can i", "what do i",
	"why does", "why is", "any advice", "any tips",
	"need advice", "looking for help", "suggestions",
	"what should i", "does anyone know",
	"how should i", "where do i", "when should i",
}

// Low-value keywords: general problem vocabulary.
var lowValueKeywords = []string{
	"help", "problem", "issue", "trouble", "difficulty",
	"question", "advice", "tips", "wrong", "bad",
	"don't know", "no idea", "confused", "understand",
	"concern", "worried", "stress", "challenge",
}

// Business-specific problem keywords.
var businessProblemKeywords = []string{
	"cash flow", "not selling", "no sales", "no customers",
	"employees quit", "can't hire", "bad reviews", "competitor",
	"lawsuit", "legal issue", "tax problem", "irs",
	"slow season", "lost client", "customer complaint",
	"pricing problem", "too expensive", "undercutting",
	"marketing not working", "no leads", "overhead costs",
}

// skipKeywords mark show-off and promo posts; matching any excludes the
// thread outright.
var skipKeywords = []string{
	"revenue milestone", "just hit", "celebrating",
	"success story", "finally made it", "proud to announce",
	"check out my business", "shameless plug",
}

// softMetaKeywords carry a score penalty only; the hard-skip list lives in
// the classifier package and is shared with per-comment filtering.
var softMetaKeywords = []string{
	"share your",
	"promotion thread",
	"community thread",
	"networking thread",
}
