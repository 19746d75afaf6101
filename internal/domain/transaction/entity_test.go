//go:build unit

package transaction_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type totalCase struct {
	name  string
	total float64
	errIs error
}

func TestNewTransaction(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewTransactionBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, transaction.StatusPending, actual.Status())
		assert.Equal(t, 3000.0, actual.Total())
		assert.True(t, actual.IsPending())
		assert.Len(t, actual.Lines(), 1)
		assert.Nil(t, actual.PaymentToken())
	})

	t.Run("declared total validation", func(t *testing.T) {
		// 3 x 1000 computed from the lines
		cases := []totalCase{
			{name: "exact total", total: 3000},
			{name: "total off by less than epsilon", total: 3000.009},
			{name: "total off by one", total: 2999, errIs: transaction.ErrTotalMismatch},
			{name: "total off by just over epsilon", total: 3000.011, errIs: transaction.ErrTotalMismatch},
			{name: "zero total", total: 0, errIs: transaction.ErrTotalMismatch},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual, err := builder.NewTransactionBuilder().WithTotal(c.total).BuildDomain()

				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, actual)
					assert.Equal(t, 3000.0, actual.Total(), "stored total is always the computed one")
				} else {
					require.Nil(t, actual)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("total is computed across multiple lines", func(t *testing.T) {
		actual, err := builder.NewTransactionBuilder().
			WithLines(
				builder.TransactionLineSpec{ProductID: 1, ProductName: "Americano", UnitPrice: 1000, Qty: 2},
				builder.TransactionLineSpec{ProductID: 2, ProductName: "Latte", UnitPrice: 1500, Qty: 1},
			).
			WithTotal(3500).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, 3500.0, actual.Total())
	})

	t.Run("no lines", func(t *testing.T) {
		actual, err := builder.NewTransactionBuilder().WithLines().WithTotal(0).BuildDomain()
		require.Nil(t, actual)
		require.ErrorIs(t, err, transaction.ErrNoLines)
	})

	t.Run("invalid payment method", func(t *testing.T) {
		actual, err := builder.NewTransactionBuilder().
			With(func(b *builder.TransactionBuilder) { b.PaymentMethod = "bitcoin" }).
			BuildDomain()
		require.Nil(t, actual)
		require.ErrorIs(t, err, transaction.ErrInvalidPaymentMethod)
	})
}

func TestTransactionStateMachine(t *testing.T) {
	t.Run("pending can be paid", func(t *testing.T) {
		tx, err := builder.NewTransactionBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, tx.MarkPaid())
		assert.Equal(t, transaction.StatusPaid, tx.Status())
	})

	t.Run("pending can be cancelled", func(t *testing.T) {
		tx, err := builder.NewTransactionBuilder().BuildDomain()
		require.NoError(t, err)

		restore, err := tx.Cancel()
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusCancelled, tx.Status())
		assert.Equal(t, map[int64]int{1: 3}, restore)
	})

	t.Run("cancel merges duplicate product lines into one restore entry", func(t *testing.T) {
		tx, err := builder.NewTransactionBuilder().
			WithLines(
				builder.TransactionLineSpec{ProductID: 1, ProductName: "Americano", UnitPrice: 1000, Qty: 2},
				builder.TransactionLineSpec{ProductID: 1, ProductName: "Americano", UnitPrice: 1000, Qty: 1},
			).
			BuildDomain()
		require.NoError(t, err)

		restore, err := tx.Cancel()
		require.NoError(t, err)
		if diff := cmp.Diff(map[int64]int{1: 3}, restore); diff != "" {
			t.Errorf("restore quantities mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("terminal states admit no transition", func(t *testing.T) {
		for _, status := range []transaction.Status{transaction.StatusPaid, transaction.StatusCancelled} {
			t.Run(status.String(), func(t *testing.T) {
				tx := builder.NewTransactionBuilder().WithStatus(status).BuildReconstructed()

				assert.ErrorIs(t, tx.MarkPaid(), transaction.ErrInvalidStateTransition)
				_, err := tx.Cancel()
				assert.ErrorIs(t, err, transaction.ErrInvalidStateTransition)
				assert.Equal(t, status, tx.Status(), "status is unchanged after rejected transitions")
			})
		}
	})

	t.Run("paying a paid transaction again is rejected", func(t *testing.T) {
		tx, err := builder.NewTransactionBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, tx.MarkPaid())
		assert.ErrorIs(t, tx.MarkPaid(), transaction.ErrInvalidStateTransition)
	})
}

func TestLine(t *testing.T) {
	t.Run("snapshot captures price and subtotal", func(t *testing.T) {
		line, err := transaction.NewLine(7, "Espresso", 1250.5, 2)
		require.NoError(t, err)

		assert.Equal(t, int64(7), line.ProductID())
		assert.Equal(t, "Espresso", line.ProductName())
		assert.Equal(t, 1250.5, line.UnitPrice())
		assert.Equal(t, 2, line.Quantity())
		assert.Equal(t, 2501.0, line.Subtotal())
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		for _, qty := range []int{0, -1} {
			_, err := transaction.NewLine(1, "Americano", 1000, qty)
			assert.ErrorIs(t, err, transaction.ErrInvalidQuantity)
		}
	})

	t.Run("price cannot be negative", func(t *testing.T) {
		_, err := transaction.NewLine(1, "Americano", -1, 1)
		assert.ErrorIs(t, err, transaction.ErrNegativePrice)
	})
}

func TestNewID(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("format", func(t *testing.T) {
		id := transaction.NewID(now)

		assert.True(t, strings.HasPrefix(id, "TRX"))
		assert.Contains(t, id, "1717237800000")
		assert.Len(t, id, len("TRX")+13+3)
		assert.True(t, transaction.IsValidID(id))
	})

	t.Run("ids for the same instant differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			seen[transaction.NewID(now)] = true
		}
		assert.Greater(t, len(seen), 1)
	})

	t.Run("IsValidID rejects foreign ids", func(t *testing.T) {
		assert.False(t, transaction.IsValidID(""))
		assert.False(t, transaction.IsValidID("TRX"))
		assert.False(t, transaction.IsValidID("ORDER-123"))
	})
}
