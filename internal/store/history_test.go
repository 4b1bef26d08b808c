package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndang/mailgrep/internal/store"
	"github.com/ndang/mailgrep/tests/testutil"
)

func TestRecordAndListSearches(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := store.SearchRecord{
		Folder:      "INBOX",
		Pattern:     "invoice",
		Regex:       true,
		WindowStart: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   &end,
		ResultCount: 3,
	}
	require.NoError(t, s.RecordSearch(ctx, rec))

	records, err := s.RecentSearches(ctx, 10)
	require.NoError(t, err)

	require.Len(t, records, 1)
	got := records[0]
	assert.NotEmpty(t, got.ID, "an ID is generated when empty")
	assert.False(t, got.RanAt.IsZero(), "RanAt is stamped when zero")
	assert.Equal(t, "INBOX", got.Folder)
	assert.Equal(t, "invoice", got.Pattern)
	assert.True(t, got.Regex)
	assert.False(t, got.Reverse)
	assert.Equal(t, 3, got.ResultCount)
	assert.Equal(t, rec.WindowStart.Unix(), got.WindowStart.Unix())
	require.NotNil(t, got.WindowEnd)
	assert.Equal(t, end.Unix(), got.WindowEnd.Unix())
}

func TestRecentSearchesOrderAndLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := store.SearchRecord{
			Folder:      "INBOX",
			Pattern:     "p",
			WindowStart: base,
			RanAt:       base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.RecordSearch(ctx, rec))
	}

	records, err := s.RecentSearches(ctx, 3)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, base.Add(4*time.Minute).Unix(), records[0].RanAt.Unix())
	assert.Equal(t, base.Add(3*time.Minute).Unix(), records[1].RanAt.Unix())
	assert.Equal(t, base.Add(2*time.Minute).Unix(), records[2].RanAt.Unix())
}

func TestRecordSearchNilWindowEnd(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	rec := store.SearchRecord{
		Folder:      "Archive",
		Pattern:     "x",
		WindowStart: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.RecordSearch(ctx, rec))

	records, err := s.RecentSearches(ctx, 1)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Nil(t, records[0].WindowEnd)
}

func TestRecentSearchesEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	records, err := s.RecentSearches(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
