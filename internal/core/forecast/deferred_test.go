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

func deferredCard() domain.Account {
	return domain.Account{
		AccountID:       "card-1",
		UserID:          "user-1",
		Name:            "Visa",
		AccountType:     domain.DeferredDebit,
		LinkedAccountID: "checking-1",
		DebitDay:        5,
	}
}

func cardExpense(id string, day time.Time, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		UserID:        "user-1",
		AccountID:     "card-1",
		Amount:        decimal.NewFromInt(amount),
		Type:          domain.Expense,
		Status:        domain.Real,
		Date:          day,
		EffectiveDate: day,
	}
}

func TestProjectDeferredDebits_SweepsCycleTotalOntoLinkedAccount(t *testing.T) {
	today := date(2026, time.March, 20) // past the 5th, next settlement Apr 5
	txns := []domain.Transaction{
		cardExpense("t1", date(2026, time.March, 10), 120),
		cardExpense("t2", date(2026, time.March, 28), 180),
	}

	got := forecast.ProjectDeferredDebits([]domain.Account{deferredCard()}, txns, today)

	require.Len(t, got, 1, "only the April cycle has expenses")
	sweep := got[0]
	assert.Equal(t, "checking-1", sweep.AccountID)
	assert.Equal(t, domain.Expense, sweep.Type)
	assert.Equal(t, domain.Potential, sweep.Status)
	assert.True(t, sweep.Amount.Equal(decimal.NewFromInt(300)))
	assert.True(t, sweep.Date.Equal(date(2026, time.April, 5)))
	assert.Equal(t, "card-1", sweep.DeferredDebitSourceAccountID)
}

func TestProjectDeferredDebits_SettlementRollsToNextMonthWhenPastDebitDay(t *testing.T) {
	card := deferredCard()
	txns := []domain.Transaction{cardExpense("t1", date(2026, time.March, 10), 100)}

	// On the 3rd the upcoming settlement is still March 5, and the March
	// cycle (Feb 5 .. Mar 4) holds no expenses, so the sweep lands on Apr 5.
	got := forecast.ProjectDeferredDebits([]domain.Account{card}, txns, date(2026, time.March, 3))
	require.Len(t, got, 1)
	assert.True(t, got[0].Date.Equal(date(2026, time.April, 5)))

	// On the 20th the March settlement is already past; same projection.
	got = forecast.ProjectDeferredDebits([]domain.Account{card}, txns, date(2026, time.March, 20))
	require.Len(t, got, 1)
	assert.True(t, got[0].Date.Equal(date(2026, time.April, 5)))
}

func TestProjectDeferredDebits_ExistingRealSettlementSuppressesProjection(t *testing.T) {
	today := date(2026, time.March, 20)
	txns := []domain.Transaction{
		cardExpense("t1", date(2026, time.March, 10), 300),
		{
			TransactionID:                "settled",
			UserID:                       "user-1",
			AccountID:                    "checking-1",
			Amount:                       decimal.NewFromInt(300),
			Type:                         domain.Expense,
			Status:                       domain.Real,
			Date:                         date(2026, time.April, 5),
			EffectiveDate:                date(2026, time.April, 5),
			DeferredDebitSourceAccountID: "card-1",
		},
	}

	got := forecast.ProjectDeferredDebits([]domain.Account{deferredCard()}, txns, today)

	assert.Empty(t, got, "a real settlement for that date replaces the projection")
}

func TestProjectDeferredDebits_IgnoresAccountsWithoutLinkOrDay(t *testing.T) {
	incomplete := deferredCard()
	incomplete.LinkedAccountID = ""
	txns := []domain.Transaction{cardExpense("t1", date(2026, time.March, 10), 100)}

	got := forecast.ProjectDeferredDebits([]domain.Account{incomplete}, txns, date(2026, time.March, 20))

	assert.Empty(t, got)
}

func TestProjectDeferredDebits_DebitDayClampedInShortMonths(t *testing.T) {
	card := deferredCard()
	card.DebitDay = 31
	txns := []domain.Transaction{cardExpense("t1", date(2026, time.February, 10), 100)}

	got := forecast.ProjectDeferredDebits([]domain.Account{card}, txns, date(2026, time.February, 1))

	require.NotEmpty(t, got)
	assert.True(t, got[0].Date.Equal(date(2026, time.February, 28)), "Feb settlement clamps to the 28th")
}
