// Package pipeline ties discovery, filtering, ranking, classification, and
// deduplication into the sequential per-thread collection loop.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonesrussell/painminer/internal/adaptive"
	"github.com/jonesrussell/painminer/internal/classifier"
	"github.com/jonesrussell/painminer/internal/config"
	"github.com/jonesrussell/painminer/internal/dedup"
	"github.com/jonesrussell/painminer/internal/discovery"
	"github.com/jonesrussell/painminer/internal/domain"
	"github.com/jonesrussell/painminer/internal/logger"
	"github.com/jonesrussell/painminer/internal/reddit"
	"github.com/jonesrussell/painminer/internal/rejected"
	"github.com/jonesrussell/painminer/internal/retry"
)

const (
	fetchRetryBaseDelay = 3 * time.Second
	fetchRetryMaxDelay  = 30 * time.Second
	previewRuneLimit    = 100
	maxSignalsReported  = 4
)

// Source is the external content provider.
type Source interface {
	DiscoverThreads(ctx context.Context, subreddit, sortMode string, limit int) ([]domain.ThreadSummary, error)
	FetchThread(ctx context.Context, threadURL string) (string, []domain.CommentRaw, error)
}

// Sink receives accepted and rejected records as they are produced.
type Sink interface {
	WriteAccepted(rec domain.AcceptedRecord) error
	WriteRejected(rec domain.RejectedRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) WriteAccepted(domain.AcceptedRecord) error { return nil }
func (NopSink) WriteRejected(domain.RejectedRecord) error { return nil }

// Result is what a full collection run produces.
type Result struct {
	Accepted     []domain.AcceptedRecord
	Stats        *domain.RunStats
	Productivity []domain.ThreadProductivity
	Rejected     rejected.Set // updated set, returned to the caller to persist
}

// Pipeline runs the collection loop. Strictly sequential: one thread is
// fully evaluated before the next starts.
type Pipeline struct {
	cfg     *config.Config
	source  Source
	sink    Sink
	scorer  *discovery.ThreadScorer
	preRank *classifier.PreRankScorer
	strict  *classifier.StrictClassifier
	hardNeg *classifier.HardNegativeFilter
	ctrl    *adaptive.Controller
	log     logger.Logger

	baseURL     string
	isRetryable func(error) bool
}

// New creates a pipeline. baseURL prefixes comment permalinks in output
// records and thread permalinks at discovery time.
func New(cfg *config.Config, source Source, sink Sink, baseURL string, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Pipeline{
		cfg:     cfg,
		source:  source,
		sink:    sink,
		scorer:  discovery.NewThreadScorer(cfg.Discovery.MinCommentsPerThread, baseURL, log),
		preRank: classifier.NewPreRankScorer(),
		strict:  classifier.NewStrictClassifier(log),
		hardNeg: classifier.NewHardNegativeFilter(),
		ctrl: adaptive.NewController(
			cfg.Filter.PreRankMinScore,
			cfg.Classifier.MinScore,
			cfg.Adaptive.PreRankMinScore,
			cfg.Adaptive.ClassifierMinScore,
			cfg.Adaptive.TriggerProgress,
			cfg.Adaptive.MinCollectedRatio,
		),
		log:         log,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		isRetryable: reddit.IsRetryable,
	}
}

// Discover assembles the ranked, rejected-filtered thread candidate list
// without fetching any comments.
func (p *Pipeline) Discover(ctx context.Context, rejectedSet rejected.Set) ([]domain.ThreadCandidate, error) {
	d := p.cfg.Discovery
	if !d.AutoDiscovery {
		candidates := make([]domain.ThreadCandidate, 0, len(d.ManualThreadURLs))
		for _, url := range d.ManualThreadURLs {
			candidates = append(candidates, domain.ThreadCandidate{URL: url})
		}
		return candidates, nil
	}

	summaries, err := p.source.DiscoverThreads(ctx, d.Subreddit, d.SortMode, d.Limit)
	if err != nil {
		return nil, fmt.Errorf("thread discovery: %w", err)
	}

	ranked, _ := p.scorer.Rank(summaries)

	kept, removed := rejectedSet.Filter(ranked)
	if filtered := len(ranked) - len(kept); filtered > 0 {
		p.log.Info("filtered previously rejected threads",
			logger.Int("filtered", filtered), logger.Int("remaining", len(kept)))
	}
	before := len(kept)
	kept = rejected.Reinstate(kept, removed, d.MinSurvivingThreads)
	if reinstated := len(kept) - before; reinstated > 0 {
		p.log.Info("reinstated high-scoring rejected threads for re-check",
			logger.Int("reinstated", reinstated))
	}

	return kept, nil
}

// Run executes the full collection loop and returns the run result together
// with the updated rejected-thread set. Failures inside a single thread are
// contained: the thread contributes nothing and the run continues.
func (p *Pipeline) Run(ctx context.Context, rejectedSet rejected.Set) (*Result, error) {
	if rejectedSet == nil {
		rejectedSet = rejected.NewSet()
	}

	threads, err := p.Discover(ctx, rejectedSet)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Stats:    domain.NewRunStats(),
		Rejected: rejectedSet,
	}
	seenIDs := make(map[string]struct{})
	dd := dedup.New(p.cfg.Filter.SimilarityThreshold)
	target := p.cfg.Collection.Target
	relaxAnnounced := false

	for idx, thread := range threads {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if len(result.Accepted) >= target {
			break
		}

		thresholds := p.ctrl.For(idx+1, len(threads), len(result.Accepted), target)
		if thresholds.Relaxed {
			result.Stats.RelaxedThreads++
			if !relaxAnnounced {
				p.log.Info("adaptive relaxed thresholds enabled to recover recall",
					logger.Float64("pre_rank_min", thresholds.PreRankMin),
					logger.Float64("classifier_min", thresholds.ClassifierMin))
				relaxAnnounced = true
			}
		}

		prod := p.processThread(ctx, thread, thresholds, seenIDs, dd, result)
		result.Stats.ThreadsProcessed++
		result.Productivity = append(result.Productivity, prod)

		p.log.Info("thread processed",
			logger.Int("thread", idx+1),
			logger.Int("total_threads", len(threads)),
			logger.Int("accepted_from_thread", prod.Accepted),
			logger.Int("collected", len(result.Accepted)),
			logger.Int("target", target),
		)
	}

	// Threads that yielded nothing feed the cumulative rejected set.
	for _, prod := range result.Productivity {
		if prod.Accepted == 0 {
			result.Rejected.Add(prod.URL)
		}
	}

	if len(result.Accepted) >= target {
		p.log.Info("collection target reached", logger.Int("collected", len(result.Accepted)))
	}
	return result, nil
}

// processThread fetches one thread and runs the full per-comment pass.
// Never returns an error: failures are logged and yield zero candidates.
func (p *Pipeline) processThread(
	ctx context.Context,
	thread domain.ThreadCandidate,
	thresholds adaptive.Thresholds,
	seenIDs map[string]struct{},
	dd *dedup.Deduplicator,
	result *Result,
) domain.ThreadProductivity {
	prod := domain.ThreadProductivity{URL: thread.URL, Title: thread.Title}

	var title string
	var comments []domain.CommentRaw
	err := retry.Do(ctx, retry.Config{
		MaxAttempts: p.cfg.Source.FetchRetries,
		BaseDelay:   fetchRetryBaseDelay,
		MaxDelay:    fetchRetryMaxDelay,
		IsRetryable: p.isRetryable,
	}, func() error {
		var fetchErr error
		title, comments, fetchErr = p.source.FetchThread(ctx, thread.URL)
		return fetchErr
	})
	if err != nil {
		p.log.Warn("thread skipped after fetch failure",
			logger.String("url", thread.URL), logger.Error(err))
		return prod
	}
	prod.Title = title

	ranked := p.rankComments(title, comments, thresholds, seenIDs, &prod)
	result.Stats.CandidatesRanked += prod.RankedCandidates
	result.Stats.HardNegativeFiltered += prod.HardNegativeFiltered
	result.Stats.LowPotentialFiltered += prod.LowPotentialFiltered

	scanLimit := p.cfg.Collection.ScanLimit
	if scanLimit > len(ranked) {
		scanLimit = len(ranked)
	}

	for _, candidate := range ranked[:scanLimit] {
		if dd.TooSimilar(candidate.Body) {
			continue
		}

		verdict := p.strict.Classify(candidate.Body, title, thresholds.ClassifierMin)
		if !verdict.Accepted {
			prod.Rejected++
			result.Stats.Rejected++
			rec := domain.RejectedRecord{
				ID:          candidate.Comment.ID,
				ThreadTitle: title,
				Reason:      fmt.Sprintf("%s | pre_rank=%.1f", verdict.Reason, candidate.PreRankScore),
				Score:       verdict.PainScore,
				BodyPreview: preview(candidate.Body),
			}
			if err := p.sink.WriteRejected(rec); err != nil {
				p.log.Warn("rejected record write failed", logger.Error(err))
			}
			continue
		}

		record := domain.AcceptedRecord{
			ID:             candidate.Comment.ID,
			ThreadTitle:    title,
			Body:           candidate.Body,
			URL:            p.baseURL + candidate.Comment.Permalink,
			Type:           "Comment",
			Category:       verdict.Category,
			PainScore:      verdict.PainScore,
			Reason:         verdict.Reason,
			PreRankScore:   candidate.PreRankScore,
			PreRankSignals: joinSignals(candidate.Signals),
		}
		if err := p.sink.WriteAccepted(record); err != nil {
			p.log.Warn("accepted record write failed", logger.Error(err))
		}

		// The id registers exactly once, at acceptance.
		seenIDs[candidate.Comment.ID] = struct{}{}
		dd.Add(candidate.Body)
		result.Accepted = append(result.Accepted, record)
		result.Stats.Accepted++
		result.Stats.CountCategory(verdict.Category)
		prod.Accepted++

		if prod.Accepted >= p.cfg.Collection.MaxPerThread {
			break
		}
		if len(result.Accepted) >= p.cfg.Collection.Target {
			break
		}
	}

	return prod
}

// rankComments applies the cheap filters and pre-rank scoring, then sorts
// survivors by score (stable, with source score and body length as
// tie-breakers).
func (p *Pipeline) rankComments(
	title string,
	comments []domain.CommentRaw,
	thresholds adaptive.Thresholds,
	seenIDs map[string]struct{},
	prod *domain.ThreadProductivity,
) []domain.RankedCandidate {
	f := p.cfg.Filter
	var ranked []domain.RankedCandidate

	for _, c := range comments {
		body := strings.TrimSpace(c.Body)
		if body == "" || body == "[deleted]" || body == "[removed]" {
			continue
		}
		if _, seen := seenIDs[c.ID]; seen {
			continue
		}
		if len(body) < f.MinChars || len(body) > f.MaxChars {
			continue
		}
		if classifier.CountSentenceMarks(body) < f.MinSentences {
			continue
		}

		if negative, _ := p.hardNeg.Check(c, body, title); negative {
			prod.HardNegativeFiltered++
			continue
		}

		score, signals := p.preRank.Score(body, title, c)
		if score < thresholds.PreRankMin {
			prod.LowPotentialFiltered++
			continue
		}

		ranked = append(ranked, domain.RankedCandidate{
			Comment:      c,
			Body:         body,
			PreRankScore: score,
			Signals:      signals,
		})
	}

	prod.RankedCandidates = len(ranked)
	sortRanked(ranked)
	return ranked
}

// sortRanked orders candidates best-first: pre-rank score, then source
// score, then body length. Stable so equal candidates keep arrival order.
func sortRanked(ranked []domain.RankedCandidate) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PreRankScore != b.PreRankScore {
			return a.PreRankScore > b.PreRankScore
		}
		if a.Comment.Score != b.Comment.Score {
			return a.Comment.Score > b.Comment.Score
		}
		return len(a.Body) > len(b.Body)
	})
}

func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewRuneLimit {
		return body
	}
	return string(runes[:previewRuneLimit]) + "..."
}

func joinSignals(signals []string) string {
	if len(signals) > maxSignalsReported {
		signals = signals[:maxSignalsReported]
	}
	return strings.Join(signals, ",")
}
