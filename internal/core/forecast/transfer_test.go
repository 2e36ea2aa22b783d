package forecast_test

import (
	"testing"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/jmallet/cashplan/internal/core/forecast"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferFixtures() (map[string]domain.Account, map[string]domain.Reserve) {
	accounts := map[string]domain.Account{
		"acc-1": {AccountID: "acc-1", AccountType: domain.Current},
		"acc-2": {AccountID: "acc-2", AccountType: domain.Savings},
	}
	reserves := map[string]domain.Reserve{
		"res-1": {ReserveID: "res-1", AccountID: "acc-2"},
	}
	return accounts, reserves
}

func transferRule(src, dst domain.TransferEndpoint) domain.RecurringTransfer {
	return domain.RecurringTransfer{
		RecurringTransferID: "trf-1",
		UserID:              "user-1",
		Name:                "monthly sweep",
		Amount:              decimal.NewFromInt(250),
		Frequency:           domain.Monthly,
		StartDate:           date(2026, time.February, 1),
		Source:              src,
		Destination:         dst,
	}
}

func TestExpandRecurringTransfers_EmitsPairedLegs(t *testing.T) {
	accounts, reserves := transferFixtures()
	rule := transferRule(
		domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-1"},
		domain.TransferEndpoint{Kind: domain.EndpointReserve, ID: "res-1"},
	)
	today := date(2026, time.February, 1)

	got := forecast.ExpandRecurringTransfers([]domain.RecurringTransfer{rule}, accounts, reserves, today)

	require.Len(t, got, 24) // 12 occurrences, two legs each
	src, dst := got[0], got[1]

	assert.Equal(t, domain.Expense, src.Type)
	assert.Equal(t, "acc-1", src.AccountID)
	assert.Empty(t, src.ReserveID)

	assert.Equal(t, domain.Income, dst.Type)
	assert.Equal(t, "acc-2", dst.AccountID, "reserve endpoint resolves to its owning account")
	assert.Equal(t, "res-1", dst.ReserveID)

	require.NotEmpty(t, src.TransferID)
	assert.Equal(t, src.TransferID, dst.TransferID, "legs of one occurrence share a transfer id")
	assert.NotEqual(t, src.TransactionID, dst.TransactionID)
	assert.Equal(t, domain.Potential, src.Status)
	assert.Equal(t, domain.Potential, dst.Status)
	assert.True(t, src.Date.Equal(dst.Date))

	// Different occurrences get different transfer ids.
	assert.NotEqual(t, got[0].TransferID, got[2].TransferID)
}

func TestExpandRecurringTransfers_UnresolvableEndpointSkipsBothLegs(t *testing.T) {
	accounts, reserves := transferFixtures()
	today := date(2026, time.February, 1)

	tests := []struct {
		name string
		rule domain.RecurringTransfer
	}{
		{
			name: "missing destination account",
			rule: transferRule(
				domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-1"},
				domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-gone"},
			),
		},
		{
			name: "missing source reserve",
			rule: transferRule(
				domain.TransferEndpoint{Kind: domain.EndpointReserve, ID: "res-gone"},
				domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-1"},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forecast.ExpandRecurringTransfers([]domain.RecurringTransfer{tt.rule}, accounts, reserves, today)
			assert.Empty(t, got, "no partial legs may be emitted")
		})
	}
}

func TestExpandRecurringTransfers_BadRuleDoesNotAbortOthers(t *testing.T) {
	accounts, reserves := transferFixtures()
	today := date(2026, time.February, 1)

	broken := transferRule(
		domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-gone"},
		domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-1"},
	)
	healthy := transferRule(
		domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-1"},
		domain.TransferEndpoint{Kind: domain.EndpointAccount, ID: "acc-2"},
	)
	healthy.RecurringTransferID = "trf-2"

	got := forecast.ExpandRecurringTransfers([]domain.RecurringTransfer{broken, healthy}, accounts, reserves, today)

	require.Len(t, got, 24)
	for _, txn := range got {
		assert.Equal(t, "trf-2", txn.RecurringTransferID)
	}
}
