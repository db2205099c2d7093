package classifier

import (
	"strings"

	"github.com/jonesrussell/painminer/internal/domain"
)

// Sentinel scores returned on short-circuit. They sit far below any
// realistic configured minimum, so the caller's threshold comparison
// excludes them without special-casing; the scorer always returns a value.
const (
	hardNegativeSentinel = -20.0
	lowQualitySentinel   = -12.0
)

// Pre-rank scoring weights.
const (
	firstPersonStrongBonus = 4.0
	firstPersonBonus       = 2.0
	painTermWeight         = 1.5
	painTermCap            = 12.0
	impactWeight           = 3.0
	impactCap              = 12.0
	attemptFailedBonus     = 3.0
	helpRequestBonus       = 2.0
	topicOverlapBonus      = 2.0
	topicOverlapMinShared  = 2
	adviceStartPenalty     = 6.0
	secondPersonPenalty    = 5.0
	successPenalty         = 6.0
	promoURLPenalty        = 4.0
	bareURLPenalty         = 1.0
	firstPersonStrongMin   = 3
	secondPersonDomMargin  = 3
	secondPersonDomFloor   = 4
)

// PreRankScorer produces the cheap heuristic score used to prioritize and
// prune comment candidates before strict classification.
type PreRankScorer struct {
	hardNegative *HardNegativeFilter
	quality      *QualityFilter
}

// NewPreRankScorer creates a pre-rank scorer.
func NewPreRankScorer() *PreRankScorer {
	return &PreRankScorer{
		hardNegative: NewHardNegativeFilter(),
		quality:      NewQualityFilter(),
	}
}

// Score ranks a comment's pain potential. It returns the score rounded to
// one decimal place and the ordered signal tags that produced it.
func (p *PreRankScorer) Score(body, threadTitle string, comment domain.CommentRaw) (float64, []string) {
	lower := strings.ToLower(body)
	score := 0.0
	var signals []string

	if negative, reason := p.hardNegative.Check(comment, body, threadTitle); negative {
		return hardNegativeSentinel, []string{"hard_negative:" + reason}
	}
	if issue := p.quality.Check(body); issue != "" {
		return lowQualitySentinel, []string{"low_quality:" + issue}
	}

	firstPerson := FirstPersonCount(lower)
	secondPerson := SecondPersonCount(lower)
	switch {
	case firstPerson >= firstPersonStrongMin:
		score += firstPersonStrongBonus
		signals = append(signals, "first_person_strong")
	case firstPerson >= 1:
		score += firstPersonBonus
		signals = append(signals, "first_person")
	}

	painHits := 0
	for _, term := range painTerms {
		if strings.Contains(lower, term) {
			painHits++
		}
	}
	if painHits > 0 {
		score += min(float64(painHits)*painTermWeight, painTermCap)
		signals = append(signals, "pain_language")
	}

	impactHits := countMatches(impactPatterns, lower)
	if impactHits > 0 {
		score += min(float64(impactHits)*impactWeight, impactCap)
		signals = append(signals, "business_impact")
	}

	if attemptFailedPattern.MatchString(lower) {
		score += attemptFailedBonus
		signals = append(signals, "attempt_failed")
	}

	if helpRequestPattern.MatchString(lower) {
		score += helpRequestBonus
		signals = append(signals, "help_request")
	}

	firstSentence := ""
	if sentences := Sentences(body); len(sentences) > 0 {
		firstSentence = strings.ToLower(sentences[0])
	}
	if anyMatch(adviceStartPatterns, firstSentence) && firstPerson <= 1 {
		score -= adviceStartPenalty
		signals = append(signals, "advice_penalty")
	}

	if secondPerson >= firstPerson+secondPersonDomMargin && secondPerson >= secondPersonDomFloor {
		score -= secondPersonPenalty
		signals = append(signals, "second_person_dominant")
	}

	if containsAny(lower, successTokens) {
		score -= successPenalty
		signals = append(signals, "success_penalty")
	}

	if urlRe.MatchString(lower) {
		if urlCTARe.MatchString(lower) {
			score -= promoURLPenalty
			signals = append(signals, "promo_url_penalty")
		} else {
			score -= bareURLPenalty
		}
	}

	if titleTokens := topicTokens(strings.ToLower(threadTitle)); len(titleTokens) > 0 {
		shared := 0
		for token := range topicTokens(lower) {
			if _, ok := titleTokens[token]; ok {
				shared++
			}
		}
		if shared >= topicOverlapMinShared {
			score += topicOverlapBonus
			signals = append(signals, "topic_overlap")
		}
	}

	return roundScore(score), signals
}
