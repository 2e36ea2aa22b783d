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

func TestBuildForecast_MonthlyExpenseScenario(t *testing.T) {
	// Account with 1000, one monthly expense of 100 starting today. The
	// expected balances are checked against the generator's own occurrence
	// dates, not an independent calendar guess.
	today := date(2026, time.January, 15)
	account := domain.Account{
		AccountID:      "acc-1",
		AccountType:    domain.Current,
		InitialBalance: decimal.NewFromInt(1000),
	}
	rule := expenseRule("rule-1", domain.Monthly, today, nil)
	generated := forecast.ExpandRecurringExpenses([]domain.RecurringExpense{rule}, today)
	merged := forecast.MergeWithReal(nil, generated)

	fc := forecast.BuildForecast([]domain.Account{account}, nil, merged, today)

	require.Len(t, fc.Snapshots, 12)
	assert.True(t, fc.Snapshots[0].Month.Equal(date(2026, time.January, 1)))

	// January snapshot: one occurrence elapsed. February: two.
	assert.True(t, fc.Snapshots[0].AccountBalances["acc-1"].Equal(decimal.NewFromInt(900)),
		"got %s", fc.Snapshots[0].AccountBalances["acc-1"])
	assert.True(t, fc.Snapshots[1].AccountBalances["acc-1"].Equal(decimal.NewFromInt(800)),
		"got %s", fc.Snapshots[1].AccountBalances["acc-1"])
	// Last snapshot: all 12 occurrences applied.
	assert.True(t, fc.Snapshots[11].AccountBalances["acc-1"].Equal(decimal.NewFromInt(-200)),
		"got %s", fc.Snapshots[11].AccountBalances["acc-1"])
}

func TestBuildForecast_TotalEqualsSumOfAccountBalances(t *testing.T) {
	today := date(2026, time.January, 15)
	accounts := []domain.Account{
		{AccountID: "acc-1", InitialBalance: decimal.NewFromInt(1000)},
		{AccountID: "acc-2", InitialBalance: decimal.NewFromFloat(-42.50)},
	}
	rules := []domain.RecurringExpense{expenseRule("rule-1", domain.Weekly, today, nil)}
	merged := forecast.MergeWithReal(nil, forecast.ExpandRecurringExpenses(rules, today))

	fc := forecast.BuildForecast(accounts, nil, merged, today)

	for _, snap := range fc.Snapshots {
		sum := decimal.Zero
		for _, bal := range snap.AccountBalances {
			sum = sum.Add(bal)
		}
		assert.True(t, sum.Equal(snap.TotalBalance), "month %s: sum %s != total %s", snap.Month, sum, snap.TotalBalance)
	}
}

func TestBuildForecast_OpeningPositionCountsOnlyRealHistory(t *testing.T) {
	today := date(2026, time.June, 15)
	account := domain.Account{AccountID: "acc-1", InitialBalance: decimal.NewFromInt(500)}
	txns := []domain.Transaction{
		{
			TransactionID: "old-real",
			AccountID:     "acc-1",
			Amount:        decimal.NewFromInt(200),
			Type:          domain.Income,
			Status:        domain.Real,
			Date:          date(2026, time.March, 1),
			EffectiveDate: date(2026, time.March, 1),
		},
		{
			TransactionID: "old-potential",
			AccountID:     "acc-1",
			Amount:        decimal.NewFromInt(999),
			Type:          domain.Income,
			Status:        domain.Potential,
			Date:          date(2026, time.March, 2),
			EffectiveDate: date(2026, time.March, 2),
		},
	}

	fc := forecast.BuildForecast([]domain.Account{account}, nil, txns, today)

	// Stale potential entries before the window never reach the opening position.
	assert.True(t, fc.Snapshots[0].AccountBalances["acc-1"].Equal(decimal.NewFromInt(700)))
}

func TestBuildForecast_ReservesStartAtZeroAndMayGoNegative(t *testing.T) {
	today := date(2026, time.January, 15)
	account := domain.Account{AccountID: "acc-1", InitialBalance: decimal.NewFromInt(1000)}
	reserve := domain.Reserve{ReserveID: "res-1", AccountID: "acc-1"}
	txns := []domain.Transaction{
		{
			TransactionID: "reserve-spend",
			AccountID:     "acc-1",
			ReserveID:     "res-1",
			Amount:        decimal.NewFromInt(80),
			Type:          domain.Expense,
			Status:        domain.Real,
			Date:          date(2026, time.January, 20),
			EffectiveDate: date(2026, time.January, 20),
		},
	}

	fc := forecast.BuildForecast([]domain.Account{account}, []domain.Reserve{reserve}, txns, today)

	assert.True(t, fc.Snapshots[0].ReserveBalances["res-1"].Equal(decimal.NewFromInt(-80)),
		"reserve balances are not clamped at zero")
	assert.True(t, fc.Snapshots[0].AccountBalances["acc-1"].Equal(decimal.NewFromInt(920)))
}

func TestBuildForecast_EffectiveDateDrivesMonthAssignment(t *testing.T) {
	today := date(2026, time.January, 15)
	account := domain.Account{AccountID: "acc-1", InitialBalance: decimal.Zero}
	txns := []domain.Transaction{
		{
			TransactionID: "card-purchase",
			AccountID:     "acc-1",
			Amount:        decimal.NewFromInt(60),
			Type:          domain.Expense,
			Status:        domain.Real,
			Date:          date(2026, time.January, 28),  // booked in January
			EffectiveDate: date(2026, time.February, 5), // settles in February
		},
	}

	fc := forecast.BuildForecast([]domain.Account{account}, nil, txns, today)

	assert.True(t, fc.Snapshots[0].AccountBalances["acc-1"].Equal(decimal.Zero))
	assert.True(t, fc.Snapshots[1].AccountBalances["acc-1"].Equal(decimal.NewFromInt(-60)))
}

func TestCurrentBalance_RealOnlyUpToCutoff(t *testing.T) {
	account := domain.Account{AccountID: "acc-1", InitialBalance: decimal.NewFromInt(100)}
	txns := []domain.Transaction{
		{TransactionID: "a", AccountID: "acc-1", Amount: decimal.NewFromInt(40), Type: domain.Income, Status: domain.Real, EffectiveDate: date(2026, time.January, 10)},
		{TransactionID: "b", AccountID: "acc-1", Amount: decimal.NewFromInt(25), Type: domain.Expense, Status: domain.Real, EffectiveDate: date(2026, time.January, 31)},
		{TransactionID: "c", AccountID: "acc-1", Amount: decimal.NewFromInt(500), Type: domain.Income, Status: domain.Potential, EffectiveDate: date(2026, time.January, 12)},
		{TransactionID: "d", AccountID: "acc-1", Amount: decimal.NewFromInt(70), Type: domain.Income, Status: domain.Real, EffectiveDate: date(2026, time.February, 2)},
		{TransactionID: "e", AccountID: "other", Amount: decimal.NewFromInt(10), Type: domain.Income, Status: domain.Real, EffectiveDate: date(2026, time.January, 5)},
	}

	got := forecast.CurrentBalance(account, txns, date(2026, time.January, 31))

	// 100 + 40 - 25; the potential income, the later income and the foreign
	// account entry are all excluded.
	assert.True(t, got.Equal(decimal.NewFromInt(115)), "got %s", got)
}

func TestReserveBalance_RealOnly(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "a", AccountID: "acc-1", ReserveID: "res-1", Amount: decimal.NewFromInt(30), Type: domain.Income, Status: domain.Real, EffectiveDate: date(2026, time.January, 10)},
		{TransactionID: "b", AccountID: "acc-1", ReserveID: "res-1", Amount: decimal.NewFromInt(10), Type: domain.Expense, Status: domain.Potential, EffectiveDate: date(2026, time.January, 12)},
	}

	got := forecast.ReserveBalance("res-1", txns, date(2026, time.January, 31))

	assert.True(t, got.Equal(decimal.NewFromInt(30)))
}
