//go:build unit

package commands

import (
	"testing"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"

	"github.com/stretchr/testify/assert"
)

func TestMapGatewayStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		fraud    string
		expected transaction.Status
		ok       bool
	}{
		{name: "capture accepted", status: "capture", fraud: "accept", expected: transaction.StatusPaid, ok: true},
		{name: "capture under fraud challenge", status: "capture", fraud: "challenge", expected: transaction.StatusPending, ok: true},
		{name: "capture with denied fraud verdict", status: "capture", fraud: "deny", ok: false},
		{name: "capture with empty fraud verdict", status: "capture", fraud: "", ok: false},
		{name: "settlement", status: "settlement", fraud: "", expected: transaction.StatusPaid, ok: true},
		{name: "deny", status: "deny", fraud: "", expected: transaction.StatusCancelled, ok: true},
		{name: "cancel", status: "cancel", fraud: "", expected: transaction.StatusCancelled, ok: true},
		{name: "expire", status: "expire", fraud: "", expected: transaction.StatusCancelled, ok: true},
		{name: "pending", status: "pending", fraud: "", expected: transaction.StatusPending, ok: true},
		{name: "unknown status is ignored", status: "refund", fraud: "", ok: false},
		{name: "empty status is ignored", status: "", fraud: "", ok: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, ok := mapGatewayStatus(c.status, c.fraud)

			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.expected, actual)
			}
		})
	}
}
