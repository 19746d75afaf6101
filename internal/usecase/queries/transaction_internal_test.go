//go:build unit

package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type summaryReadStore struct {
	dayStart time.Time
	dayEnd   time.Time
}

func (s *summaryReadStore) FindByID(context.Context, string) (*TransactionView, error) {
	return nil, nil
}

func (s *summaryReadStore) List(context.Context, TransactionFilter) ([]*TransactionView, int64, error) {
	return nil, 0, nil
}

func (s *summaryReadStore) OwnerOf(context.Context, string) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s *summaryReadStore) SalesSummary(_ context.Context, dayStart, dayEnd time.Time, _ string) (*SalesSummaryView, error) {
	s.dayStart = dayStart
	s.dayEnd = dayEnd
	return &SalesSummaryView{}, nil
}

func TestSalesSummaryDayWindow(t *testing.T) {
	// A zone west of UTC: converting a UTC-midnight instant into it would
	// land on the previous calendar day.
	loc := time.FixedZone("UTC-5", -5*60*60)

	t.Run("explicit date names that calendar day in the report zone", func(t *testing.T) {
		store := &summaryReadStore{}
		q := NewTransactionQueries(store, fixedClock{now: time.Now()}, loc)

		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := q.SalesSummary(context.Background(), &date)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), store.dayStart)
		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, loc), store.dayEnd)
	})

	t.Run("defaults to today in the report zone", func(t *testing.T) {
		store := &summaryReadStore{}
		now := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
		q := NewTransactionQueries(store, fixedClock{now: now}, loc)

		_, err := q.SalesSummary(context.Background(), nil)

		require.NoError(t, err)
		// 23:30 UTC is 18:30 the same day at UTC-5.
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), store.dayStart)
	})
}
