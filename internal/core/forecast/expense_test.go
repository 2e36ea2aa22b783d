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

func expenseRule(id string, freq domain.RecurringFrequency, start time.Time, end *time.Time) domain.RecurringExpense {
	return domain.RecurringExpense{
		RecurringExpenseID: id,
		UserID:             "user-1",
		Name:               "test rule",
		Amount:             decimal.NewFromInt(100),
		Frequency:          freq,
		StartDate:          start,
		EndDate:            end,
		AccountID:          "acc-1",
		CategoryID:         "cat-1",
	}
}

func TestExpandRecurringExpenses_OccurrenceCounts(t *testing.T) {
	today := date(2026, time.January, 15)

	tests := []struct {
		name      string
		frequency domain.RecurringFrequency
		want      int
	}{
		{name: "weekly over 12 months", frequency: domain.Weekly, want: 365/7 + 1},
		{name: "monthly over 12 months", frequency: domain.Monthly, want: 12},
		{name: "annual over 12 months", frequency: domain.Annual, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := []domain.RecurringExpense{expenseRule("rule-1", tt.frequency, today, nil)}
			got := forecast.ExpandRecurringExpenses(rules, today)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestExpandRecurringExpenses_FieldsCopiedFromRule(t *testing.T) {
	today := date(2026, time.January, 15)
	rule := expenseRule("rule-1", domain.Monthly, today, nil)

	got := forecast.ExpandRecurringExpenses([]domain.RecurringExpense{rule}, today)

	require.NotEmpty(t, got)
	first := got[0]
	assert.Equal(t, domain.Potential, first.Status)
	assert.Equal(t, domain.Expense, first.Type)
	assert.True(t, first.Amount.Equal(rule.Amount))
	assert.Equal(t, rule.AccountID, first.AccountID)
	assert.Equal(t, rule.CategoryID, first.CategoryID)
	assert.Equal(t, rule.RecurringExpenseID, first.RecurringExpenseID)
	assert.True(t, first.Date.Equal(today))
	assert.True(t, first.EffectiveDate.Equal(first.Date))
}

func TestExpandRecurringExpenses_EndDateIsInclusive(t *testing.T) {
	today := date(2026, time.January, 15)
	end := date(2026, time.March, 15)
	rule := expenseRule("rule-1", domain.Monthly, today, &end)

	got := forecast.ExpandRecurringExpenses([]domain.RecurringExpense{rule}, today)

	require.Len(t, got, 3) // Jan 15, Feb 15, Mar 15
	assert.True(t, got[2].Date.Equal(end))
}

func TestExpandRecurringExpenses_StartPastHorizonYieldsNothing(t *testing.T) {
	today := date(2026, time.January, 15)
	rule := expenseRule("rule-1", domain.Monthly, today.AddDate(2, 0, 0), nil)

	got := forecast.ExpandRecurringExpenses([]domain.RecurringExpense{rule}, today)

	assert.Empty(t, got)
}

func TestExpandRecurringExpenses_Idempotent(t *testing.T) {
	today := date(2026, time.January, 15)
	rules := []domain.RecurringExpense{
		expenseRule("rule-1", domain.Weekly, today, nil),
		expenseRule("rule-2", domain.Monthly, today.AddDate(0, 0, 3), nil),
	}

	first := forecast.ExpandRecurringExpenses(rules, today)
	second := forecast.ExpandRecurringExpenses(rules, today)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].TransactionID, second[i].TransactionID)
		assert.True(t, first[i].Date.Equal(second[i].Date))
	}
}

func TestExpandRecurringExpenses_DistinctRulesGetDistinctIdentities(t *testing.T) {
	today := date(2026, time.January, 15)
	rules := []domain.RecurringExpense{
		expenseRule("rule-1", domain.Monthly, today, nil),
		expenseRule("rule-2", domain.Monthly, today, nil),
	}

	got := forecast.ExpandRecurringExpenses(rules, today)

	seen := make(map[string]struct{})
	for _, txn := range got {
		_, dup := seen[txn.TransactionID]
		require.False(t, dup, "duplicate generated id %s", txn.TransactionID)
		seen[txn.TransactionID] = struct{}{}
	}
}
