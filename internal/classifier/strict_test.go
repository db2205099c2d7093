package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/painminer/internal/domain"
)

const defaultMinScore = 6.0

func TestClassifyAcceptsPainNarrative(t *testing.T) {
	c := NewStrictClassifier(nil)

	result := c.Classify(painNarrative, "Customer retention trouble", defaultMinScore)

	require.True(t, result.Accepted, "reason: %s", result.Reason)
	assert.Equal(t, domain.CategoryCashFlowFinance, result.Category)
	// own_context (+2.0), first_person_pain (+2.2), two impact hits (+5.6),
	// unresolved (+1.2)
	assert.InDelta(t, 11.0, result.PainScore, 0.001)
	assert.True(t, strings.HasPrefix(result.Reason, "approved ("), "reason: %s", result.Reason)
}

func TestClassifyRejectionGates(t *testing.T) {
	c := NewStrictClassifier(nil)

	tests := []struct {
		name       string
		body       string
		title      string
		wantReason string
	}{
		{
			name:       "single sentence",
			body:       "My supplier raised prices again and I am stuck",
			title:      "Supplier trouble",
			wantReason: "fewer than 2 sentences",
		},
		{
			name:       "meta thread title",
			body:       painNarrative,
			title:      "Monthly Megathread",
			wantReason: "meta/promo thread",
		},
		{
			name:       "bot message",
			body:       "I am a bot, and this action was performed automatically. Please contact the moderators with questions.",
			title:      "Cash flow trouble",
			wantReason: "bot message",
		},
		{
			name:       "self promotion",
			body:       "I struggled with this exact problem last year. Feel free to contact me at my consulting firm.",
			title:      "Cash flow trouble",
			wantReason: "self-promotion",
		},
		{
			name:       "pure advice opening",
			body:       "You should raise your prices. You need to think about your margins.",
			title:      "Pricing question",
			wantReason: "pure advice",
		},
		{
			name:       "second person dominant",
			body:       "Honestly the issue is that you undercharge and you oversell. Once you fix your funnel you will see your numbers recover. I went through it too.",
			title:      "Marketing help",
			wantReason: "advice-dominant (second-person)",
		},
		{
			name:       "third party story",
			body:       "He lost money every single month after the rent doubled. She told him to close the cafe but the landlord forced the issue first.",
			title:      "Cafe economics",
			wantReason: "about someone else's experience",
		},
		{
			name:       "no own context",
			body:       "The weather ruined the whole street festival. Nothing could be done about the vendor turnout after that.",
			title:      "Festival season",
			wantReason: "no own-experience context",
		},
		{
			name:       "resolved story",
			body:       "I run my own shop and we lost customers during the rebuild, but switching providers was the best decision I ever made. Revenue is back and the team is happy now.",
			title:      "Payroll tools",
			wantReason: "not clearly unresolved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.body, tt.title, defaultMinScore)
			if result.Accepted {
				t.Fatalf("Classify() accepted, want rejection %q", tt.wantReason)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Classify() reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestClassifyScoreTooLow(t *testing.T) {
	c := NewStrictClassifier(nil)

	// Own context and an open question, but almost no pain language.
	body := "I run a small studio and I still have not sorted my booking flow. Does anyone know a sane way to handle this?"
	result := c.Classify(body, "Scheduling tools", 9.0)

	require.False(t, result.Accepted)
	assert.Contains(t, result.Reason, "pain score too low")
	assert.Contains(t, result.Reason, "< 9.0")
}

func TestClassifyLowerMinimumAccepts(t *testing.T) {
	c := NewStrictClassifier(nil)
	body := "I run a small studio and I still have not sorted my booking flow. Does anyone know a sane way to handle this?"

	strict := c.Classify(body, "Scheduling tools", 9.0)
	relaxed := c.Classify(body, "Scheduling tools", 5.0)

	require.False(t, strict.Accepted)
	require.True(t, relaxed.Accepted, "reason: %s", relaxed.Reason)
	assert.InDelta(t, strict.PainScore, relaxed.PainScore, 0.001)
}

func TestClassifyCategoryPrecedence(t *testing.T) {
	c := NewStrictClassifier(nil)

	// Mentions both payroll (cash flow) and hiring (staffing); the first
	// matching rule must win.
	body := "I run a small shop and payroll is killing me while hiring anyone reliable feels impossible. I still can't see a way out of this."
	result := c.Classify(body, "Staffing and money", defaultMinScore)

	require.True(t, result.Accepted, "reason: %s", result.Reason)
	assert.Equal(t, domain.CategoryCashFlowFinance, result.Category)
}

func TestClassifyIsPure(t *testing.T) {
	c := NewStrictClassifier(nil)

	first := c.Classify(painNarrative, "Customer retention trouble", defaultMinScore)
	for i := 0; i < 3; i++ {
		again := c.Classify(painNarrative, "Customer retention trouble", defaultMinScore)
		assert.Equal(t, first, again)
	}
}
