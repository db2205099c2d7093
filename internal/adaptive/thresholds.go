// Package adaptive trades precision for recall late in a run: when most
// threads are processed but the collection target is lagging, score
// thresholds are lowered for the current thread only.
package adaptive

// Thresholds is the pair of minimum scores in effect for one thread.
type Thresholds struct {
	PreRankMin    float64
	ClassifierMin float64
	Relaxed       bool
}

// Controller recomputes thresholds per thread from run progress. It holds
// both strict and relaxed threshold sets; the decision is never sticky and
// every thread is evaluated fresh.
type Controller struct {
	strict            Thresholds
	relaxed           Thresholds
	triggerProgress   float64
	minCollectedRatio float64
}

// NewController creates a threshold controller. triggerProgress is the run
// progress ratio at which relaxation becomes possible; minCollectedRatio is
// the collected/target ratio below which it activates.
func NewController(strictPreRank, strictClassifier, relaxedPreRank, relaxedClassifier,
	triggerProgress, minCollectedRatio float64) *Controller {
	return &Controller{
		strict:            Thresholds{PreRankMin: strictPreRank, ClassifierMin: strictClassifier},
		relaxed:           Thresholds{PreRankMin: relaxedPreRank, ClassifierMin: relaxedClassifier, Relaxed: true},
		triggerProgress:   triggerProgress,
		minCollectedRatio: minCollectedRatio,
	}
}

// For returns the thresholds to use for the next thread given how many
// threads have been processed out of totalThreads and how many items have
// been collected toward target.
func (c *Controller) For(threadsProcessed, totalThreads, collected, target int) Thresholds {
	progressRatio := ratio(threadsProcessed, totalThreads)
	collectedRatio := ratio(collected, target)

	if progressRatio >= c.triggerProgress && collectedRatio < c.minCollectedRatio {
		return c.relaxed
	}
	return c.strict
}

// Strict returns the strict threshold set.
func (c *Controller) Strict() Thresholds { return c.strict }

// RelaxedSet returns the relaxed threshold set.
func (c *Controller) RelaxedSet() Thresholds { return c.relaxed }

func ratio(n, d int) float64 {
	if d < 1 {
		d = 1
	}
	return float64(n) / float64(d)
}
