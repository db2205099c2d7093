package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/painminer/internal/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSinkWritesRows(t *testing.T) {
	dir := t.TempDir()
	acceptedPath := filepath.Join(dir, "accepted.csv")
	rejectedPath := filepath.Join(dir, "rejected.csv")

	sink, err := NewCSVSink(acceptedPath, rejectedPath)
	require.NoError(t, err)

	require.NoError(t, sink.WriteAccepted(domain.AcceptedRecord{
		ID:             "c1",
		ThreadTitle:    "Cash flow trouble",
		Body:           "I keep losing money, and I\nstill have no idea why.",
		URL:            "https://www.reddit.com/p/c1/",
		Type:           "Comment",
		Category:       domain.CategoryCashFlowFinance,
		PainScore:      8.4,
		Reason:         "approved (own_context)",
		PreRankScore:   11.0,
		PreRankSignals: "first_person_strong",
	}))
	require.NoError(t, sink.WriteRejected(domain.RejectedRecord{
		ID:          "c2",
		ThreadTitle: "Cash flow trouble",
		Reason:      "pure advice | pre_rank=6.5",
		Score:       0,
		BodyPreview: "You should raise your prices...",
	}))
	require.NoError(t, sink.Close())

	accepted := readCSV(t, acceptedPath)
	require.Len(t, accepted, 2)
	assert.Equal(t, acceptedHeader, accepted[0])
	assert.Equal(t, []string{
		"c1", "Cash flow trouble", "I keep losing money, and I\nstill have no idea why.",
		"https://www.reddit.com/p/c1/", "Comment", "cash_flow_finance",
		"8.4", "approved (own_context)", "11.0", "first_person_strong",
	}, accepted[1])

	rejected := readCSV(t, rejectedPath)
	require.Len(t, rejected, 2)
	assert.Equal(t, rejectedHeader, rejected[0])
	assert.Equal(t, "pure advice | pre_rank=6.5", rejected[1][2])
}

// Rows are flushed immediately, so a crashed run keeps everything written
// before the crash.
func TestCSVSinkFlushesPerRow(t *testing.T) {
	dir := t.TempDir()
	acceptedPath := filepath.Join(dir, "accepted.csv")

	sink, err := NewCSVSink(acceptedPath, filepath.Join(dir, "rejected.csv"))
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.WriteAccepted(domain.AcceptedRecord{ID: "c1", Type: "Comment"}))

	// Read before Close: the row must already be on disk.
	rows := readCSV(t, acceptedPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "c1", rows[1][0])
}
