package classifier

import (
	"strings"
	"testing"
)

func TestQualityFilterCheck(t *testing.T) {
	filter := NewQualityFilter()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "coherent narrative passes",
			text: "My shop has been losing money for three months straight. I have tried cutting costs but nothing seems to help so far.",
			want: "",
		},
		{
			name: "empty text",
			text: "   ",
			want: "no meaningful content",
		},
		{
			name: "punctuation only",
			text: "!!! ... ?!",
			want: "no meaningful content",
		},
		{
			name: "fragmented short sentences",
			text: strings.Repeat("so true. ", 10),
			want: "fragmented, too many short sentences",
		},
		{
			name: "fragmented lines",
			text: strings.Repeat("buy cheap widgets\n", 8),
			want: "fragmented lines",
		},
		{
			name: "low lexical diversity",
			text: strings.Repeat("growth hacking magic ", 50),
			want: "low lexical diversity",
		},
		{
			name: "nonsense markers",
			text: "I finished the books tonight. That'll do pig, that'll do.",
			want: "nonsense markers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Check(tt.text); got != tt.want {
				t.Errorf("Check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQualityFilterDeterministic(t *testing.T) {
	filter := NewQualityFilter()
	text := strings.Repeat("short one. ", 12)

	first := filter.Check(text)
	for i := 0; i < 5; i++ {
		if got := filter.Check(text); got != first {
			t.Fatalf("Check() changed between calls: %q then %q", first, got)
		}
	}
}
