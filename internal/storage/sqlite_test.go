package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/painminer/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(id string, category domain.Category) domain.AcceptedRecord {
	return domain.AcceptedRecord{
		ID:             id,
		ThreadTitle:    "Cash flow trouble",
		Body:           "I keep losing money every month and I don't know why.",
		URL:            "https://www.reddit.com/p/" + id + "/",
		Type:           "Comment",
		Category:       category,
		PainScore:      8.4,
		Reason:         "approved (own_context, business_impact)",
		PreRankScore:   11.0,
		PreRankSignals: "first_person_strong,pain_language",
	}
}

func TestStoreAcceptedRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := sampleRecord("c1", domain.CategoryCashFlowFinance)
	require.NoError(t, store.WriteAccepted(want))

	got, err := store.Accepted()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestStoreWriteAcceptedIsUpsert(t *testing.T) {
	store := openTestStore(t)

	rec := sampleRecord("c1", domain.CategoryCashFlowFinance)
	require.NoError(t, store.WriteAccepted(rec))

	rec.PainScore = 9.9
	require.NoError(t, store.WriteAccepted(rec))

	got, err := store.Accepted()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9.9, got[0].PainScore)
}

func TestStoreCategoryCounts(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.WriteAccepted(sampleRecord("c1", domain.CategoryCashFlowFinance)))
	require.NoError(t, store.WriteAccepted(sampleRecord("c2", domain.CategoryCashFlowFinance)))
	require.NoError(t, store.WriteAccepted(sampleRecord("c3", domain.CategoryStaffing)))

	counts, err := store.CategoryCounts()
	require.NoError(t, err)
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryCashFlowFinance: 2,
		domain.CategoryStaffing:        1,
	}, counts)
}

func TestStoreWriteRejected(t *testing.T) {
	store := openTestStore(t)

	rec := domain.RejectedRecord{
		ID:          "r1",
		ThreadTitle: "Cash flow trouble",
		Reason:      "pure advice | pre_rank=6.5",
		Score:       0,
		BodyPreview: "You should raise your prices...",
	}
	require.NoError(t, store.WriteRejected(rec))
	require.NoError(t, store.WriteRejected(rec), "same id twice must not error")
}
