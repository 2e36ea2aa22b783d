package forecast

import (
	"sort"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildForecast walks the merged, date-ordered transaction set into 12
// consecutive monthly snapshots starting from the first day of the current
// month. Opening positions are each account's initial balance adjusted by all
// REAL transactions effective strictly before the window; reserves open at
// zero. Inside the window real and potential transactions count alike, signed
// by type. Reserve balances are allowed to go negative.
func BuildForecast(accounts []domain.Account, reserves []domain.Reserve, merged []domain.Transaction, today time.Time) domain.Forecast {
	windowStart := monthStart(Day(today))

	accountBalances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		accountBalances[a.AccountID] = a.InitialBalance
	}
	reserveBalances := make(map[string]decimal.Decimal, len(reserves))
	for _, r := range reserves {
		reserveBalances[r.ReserveID] = decimal.Zero
	}

	// The accumulator owns its ordering; callers hand over display order.
	txns := make([]domain.Transaction, len(merged))
	copy(txns, merged)
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].EffectiveDate.Before(txns[j].EffectiveDate)
	})

	// Roll everything booked before the window into the opening position.
	idx := 0
	for ; idx < len(txns); idx++ {
		t := txns[idx]
		if !Day(t.EffectiveDate).Before(windowStart) {
			break
		}
		if t.Status != domain.Real {
			continue
		}
		applyTransaction(t, accountBalances, reserveBalances)
	}

	snapshots := make([]domain.MonthlySnapshot, 0, HorizonMonths)
	for m := 0; m < HorizonMonths; m++ {
		monthFrom := windowStart.AddDate(0, m, 0)
		monthTo := windowStart.AddDate(0, m+1, 0)

		for ; idx < len(txns); idx++ {
			t := txns[idx]
			if !Day(t.EffectiveDate).Before(monthTo) {
				break
			}
			applyTransaction(t, accountBalances, reserveBalances)
		}

		snapshots = append(snapshots, snapshotOf(monthFrom, accountBalances, reserveBalances))
	}

	return domain.Forecast{GeneratedAt: Day(today), Snapshots: snapshots}
}

func applyTransaction(t domain.Transaction, accountBalances, reserveBalances map[string]decimal.Decimal) {
	if bal, ok := accountBalances[t.AccountID]; ok {
		accountBalances[t.AccountID] = bal.Add(t.SignedAmount())
	}
	if t.ReserveID != "" {
		if bal, ok := reserveBalances[t.ReserveID]; ok {
			reserveBalances[t.ReserveID] = bal.Add(t.SignedAmount())
		}
	}
}

func snapshotOf(month time.Time, accountBalances, reserveBalances map[string]decimal.Decimal) domain.MonthlySnapshot {
	snap := domain.MonthlySnapshot{
		Month:           month,
		AccountBalances: make(map[string]decimal.Decimal, len(accountBalances)),
		ReserveBalances: make(map[string]decimal.Decimal, len(reserveBalances)),
		TotalBalance:    decimal.Zero,
	}
	for id, bal := range accountBalances {
		snap.AccountBalances[id] = bal
		snap.TotalBalance = snap.TotalBalance.Add(bal)
	}
	for id, bal := range reserveBalances {
		snap.ReserveBalances[id] = bal
	}
	return snap
}

// CurrentBalance answers the non-forecast balance query: the account's
// initial balance plus all REAL transactions with an effective date at or
// before the cutoff. Potential transactions never count here.
func CurrentBalance(account domain.Account, txns []domain.Transaction, cutoff time.Time) decimal.Decimal {
	cutoff = Day(cutoff)
	balance := account.InitialBalance
	for _, t := range txns {
		if t.Status != domain.Real || t.AccountID != account.AccountID {
			continue
		}
		if Day(t.EffectiveDate).After(cutoff) {
			continue
		}
		balance = balance.Add(t.SignedAmount())
	}
	return balance
}

// ReserveBalance is the REAL-only running balance of one reserve up to the
// cutoff. Reserves start from zero.
func ReserveBalance(reserveID string, txns []domain.Transaction, cutoff time.Time) decimal.Decimal {
	cutoff = Day(cutoff)
	balance := decimal.Zero
	for _, t := range txns {
		if t.Status != domain.Real || t.ReserveID != reserveID {
			continue
		}
		if Day(t.EffectiveDate).After(cutoff) {
			continue
		}
		balance = balance.Add(t.SignedAmount())
	}
	return balance
}
