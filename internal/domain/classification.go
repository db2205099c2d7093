package domain

// Category is the topic bucket assigned to an accepted pain narrative.
type Category string

// Categories in fixed assignment priority order. A text matching several
// vocabularies always receives the first matching category.
const (
	CategoryCashFlowFinance    Category = "cash_flow_finance"
	CategoryStaffing           Category = "staffing"
	CategoryOperationsSystems  Category = "operations_systems"
	CategoryMarketingGrowth    Category = "marketing_growth"
	CategoryLegalCompliance    Category = "legal_compliance"
	CategoryFounderBurnout     Category = "founder_burnout"
	CategoryCustomerManagement Category = "customer_management"
	CategoryGeneralBusiness    Category = "general_business_pain"
)

// ClassificationResult is the strict classifier's verdict for one candidate.
// Immutable; produced exactly once per candidate. Rejection is a value, not
// an error.
type ClassificationResult struct {
	Accepted  bool
	Category  Category // set only when Accepted
	PainScore float64
	Reason    string // human-auditable accept/reject reason
}

// AcceptedRecord is the output row for an accepted item.
type AcceptedRecord struct {
	ID             string   `db:"id"`
	ThreadTitle    string   `db:"thread_title"`
	Body           string   `db:"body"`
	URL            string   `db:"url"`
	Type           string   `db:"type"`
	Category       Category `db:"category"`
	PainScore      float64  `db:"pain_score"`
	Reason         string   `db:"reason"`
	PreRankScore   float64  `db:"pre_rank_score"`
	PreRankSignals string   `db:"pre_rank_signals"`
}

// RejectedRecord is the audit row for a candidate rejected after ranking.
type RejectedRecord struct {
	ID          string  `db:"id"`
	ThreadTitle string  `db:"thread_title"`
	Reason      string  `db:"reason"`
	Score       float64 `db:"score"`
	BodyPreview string  `db:"body_preview"`
}

// ThreadProductivity records what one thread yielded.
type ThreadProductivity struct {
	URL                  string
	Title                string
	Accepted             int
	Rejected             int
	RankedCandidates     int
	LowPotentialFiltered int
	HardNegativeFiltered int
}

// RunStats aggregates counters across a full collection run.
type RunStats struct {
	ThreadsProcessed     int
	CandidatesRanked     int
	HardNegativeFiltered int
	LowPotentialFiltered int
	RelaxedThreads       int
	Accepted             int
	Rejected             int
	CategoryCounts       map[Category]int
}

// NewRunStats creates an empty stats accumulator.
func NewRunStats() *RunStats {
	return &RunStats{CategoryCounts: make(map[Category]int)}
}

// CountCategory records one accepted item for a category.
func (s *RunStats) CountCategory(c Category) {
	s.CategoryCounts[c]++
}
