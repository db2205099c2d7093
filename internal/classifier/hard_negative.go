package classifier

import (
	"strings"

	"github.com/jonesrussell/painminer/internal/domain"
)

// autoModeratorName is the site-wide automated moderation account.
const autoModeratorName = "automoderator"

// HardNegativeFilter rejects comments that are almost never genuine pain
// narratives regardless of wording: moderator and bot posts, stickied
// notices, and service pitches. It is cheap and runs before pre-ranking.
type HardNegativeFilter struct{}

// NewHardNegativeFilter creates a hard-negative filter.
func NewHardNegativeFilter() *HardNegativeFilter {
	return &HardNegativeFilter{}
}

// Check returns (true, reason) when the comment is categorically excluded.
// Rules run in a fixed order; the first match wins, so verdicts are stable
// under re-evaluation.
func (h *HardNegativeFilter) Check(comment domain.CommentRaw, body, threadTitle string) (bool, string) {
	lower := strings.ToLower(body)
	titleLower := strings.ToLower(threadTitle)

	if containsAny(titleLower, HardSkipThreadKeywords) {
		return true, "meta/promo thread"
	}

	switch strings.ToLower(comment.Distinguished) {
	case "moderator", "admin":
		return true, "moderator/admin comment"
	}

	if strings.ToLower(comment.Author) == autoModeratorName {
		return true, "automated moderation comment"
	}

	if comment.Stickied {
		return true, "stickied moderator comment"
	}

	if anyMatch(moderatorNoticePatterns, lower) {
		return true, "moderator notice"
	}

	if anyMatch(servicePitchPatterns, lower) {
		return true, "service pitch/self-promo"
	}

	return false, ""
}
