package classifier

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/painminer/internal/domain"
	"github.com/jonesrussell/painminer/internal/logger"
)

// Strict classifier scoring weights and caps.
const (
	minSentencesRequired    = 2
	ownContextBonus         = 2.0
	ownContextFirstPersonMin = 3
	firstPersonPainWeight   = 2.2
	strictImpactWeight      = 2.8
	unresolvedWeight        = 1.2
	unresolvedCap           = 3.6
	helpWeight              = 1.3
	helpCap                 = 2.6
	attemptFailedWeight     = 1.8
	advicePhrasePenalty     = 1.5
	advicePenaltyCap        = 4.5
	platitudePenalty        = 2.5
	maxReasonFeatures       = 4
)

// StrictClassifier is the final accept/reject gate with category assignment.
// Classification of a (body, title, minimum) triple is a pure function: no
// hidden state influences the verdict.
type StrictClassifier struct {
	quality *QualityFilter
	logger  logger.Logger
}

// NewStrictClassifier creates a strict classifier.
func NewStrictClassifier(log logger.Logger) *StrictClassifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &StrictClassifier{
		quality: NewQualityFilter(),
		logger:  log,
	}
}

// Classify runs the gate sequence and, when every gate passes, accumulates
// the pain score and assigns a category. Rejection is a structured result
// with a reason, never an error.
func (c *StrictClassifier) Classify(body, threadTitle string, minScore float64) domain.ClassificationResult {
	lower := strings.ToLower(body)
	titleLower := strings.ToLower(threadTitle)
	sentences := Sentences(body)

	if len(sentences) < minSentencesRequired {
		return reject("fewer than 2 sentences", 0)
	}

	if containsAny(titleLower, HardSkipThreadKeywords) {
		return reject("meta/promo thread", 0)
	}

	if issue := c.quality.Check(body); issue != "" {
		return reject(issue, 0)
	}

	if containsAny(lower, botMarkers) {
		return reject("bot message", 0)
	}

	if anyMatch(promoPatterns, lower) {
		return reject("self-promotion", 0)
	}

	if anyMatch(strictModeratorNoticePatterns, lower) {
		return reject("moderator notice", 0)
	}

	firstPerson := FirstPersonCount(lower)
	secondPerson := SecondPersonCount(lower)
	firstSentence := strings.ToLower(sentences[0])

	if anyMatch(adviceStartPatterns, firstSentence) && firstPerson <= 1 {
		return reject("pure advice", 0)
	}

	if secondPerson >= firstPerson+secondPersonDomMargin && secondPerson >= secondPersonDomFloor {
		return reject("advice-dominant (second-person)", 0)
	}

	// Third-person narratives are not the speaker's own pain.
	if firstPerson == 0 && thirdPartyRe.MatchString(lower) {
		return reject("about someone else's experience", 0)
	}

	painScore := 0.0
	var features []string

	ownContext := anyMatch(ownContextPatterns, lower) ||
		(firstPerson >= ownContextFirstPersonMin && businessVocabPattern.MatchString(lower))
	if ownContext {
		painScore += ownContextBonus
		features = append(features, "own_context")
	}

	fpPainHits := countMatches(firstPersonPainPatterns, lower)
	if fpPainHits > 0 {
		painScore += float64(fpPainHits) * firstPersonPainWeight
		features = append(features, "first_person_pain")
	}

	impactHits := countMatches(strictImpactPatterns, lower)
	if impactHits > 0 {
		painScore += float64(impactHits) * strictImpactWeight
		features = append(features, "business_impact")
	}

	unresolvedHits := countMatches(unresolvedPatterns, lower)
	if unresolvedHits > 0 {
		painScore += min(float64(unresolvedHits)*unresolvedWeight, unresolvedCap)
		features = append(features, "unresolved")
	}

	helpHits := countMatches(helpPatterns, lower)
	if helpHits > 0 {
		painScore += min(float64(helpHits)*helpWeight, helpCap)
		features = append(features, "help_request")
	}

	if attemptFailedPattern.MatchString(lower) {
		painScore += attemptFailedWeight
		features = append(features, "attempt_failed")
	}

	if adviceHits := countMatches(advicePhrases, lower); adviceHits > 0 {
		painScore -= min(float64(adviceHits)*advicePhrasePenalty, advicePenaltyCap)
	}

	if containsAny(lower, resolvedPlatitudes) {
		painScore -= platitudePenalty
	}

	problemSignal := fpPainHits+impactHits+unresolvedHits > 0
	needsResolution := unresolvedHits > 0 || helpHits > 0 || stuckPattern.MatchString(lower)

	switch {
	case !ownContext:
		return reject("no own-experience context", painScore)
	case !problemSignal:
		return reject("no concrete pain indicators", painScore)
	case !needsResolution:
		return reject("not clearly unresolved", painScore)
	case roundScore(painScore) < minScore:
		return reject(fmt.Sprintf("pain score too low (%.1f < %.1f)", roundScore(painScore), minScore), painScore)
	}

	category := assignCategory(lower)

	c.logger.Debug("candidate accepted",
		logger.String("category", string(category)),
		logger.Float64("pain_score", roundScore(painScore)),
		logger.Strings("features", features),
	)

	if len(features) > maxReasonFeatures {
		features = features[:maxReasonFeatures]
	}
	return domain.ClassificationResult{
		Accepted:  true,
		Category:  category,
		PainScore: roundScore(painScore),
		Reason:    "approved (" + strings.Join(features, ", ") + ")",
	}
}

func reject(reason string, score float64) domain.ClassificationResult {
	return domain.ClassificationResult{
		Accepted:  false,
		PainScore: roundScore(score),
		Reason:    reason,
	}
}
