package forecast

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProjectDeferredDebits models "the statement balance will be swept from
// checking on settlement day" for every deferred-debit account with a linked
// account and a debit day.
//
// For each of the next 12 monthly settlement dates, the billing cycle is the
// calendar month ending the day before settlement. The sum of REAL expenses
// on the card whose effective date falls in that cycle is projected as one
// POTENTIAL expense on the linked account, unless the sum is zero or a real
// settlement transaction already exists for that account and date.
func ProjectDeferredDebits(accounts []domain.Account, txns []domain.Transaction, today time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, acc := range accounts {
		if !acc.IsDeferredDebit() {
			continue
		}
		out = append(out, projectAccountSettlements(acc, txns, today)...)
	}
	return out
}

func projectAccountSettlements(acc domain.Account, txns []domain.Transaction, today time.Time) []domain.Transaction {
	today = Day(today)

	// First upcoming settlement: this month's debit day, rolling to next
	// month when today is already past it.
	year, month := today.Year(), today.Month()
	if today.Day() > acc.DebitDay {
		month++
	}

	var out []domain.Transaction
	for i := 0; i < HorizonMonths; i++ {
		settle := clampedDayOfMonth(year, month+time.Month(i), acc.DebitDay)
		cycleStart := settle.AddDate(0, -1, 0)

		total := decimal.Zero
		settled := false
		for _, t := range txns {
			if t.Status != domain.Real {
				continue
			}
			if t.DeferredDebitSourceAccountID == acc.AccountID && Day(t.Date).Equal(settle) {
				settled = true
				break
			}
			if t.AccountID != acc.AccountID || t.Type != domain.Expense {
				continue
			}
			eff := Day(t.EffectiveDate)
			if !eff.Before(cycleStart) && eff.Before(settle) {
				total = total.Add(t.Amount)
			}
		}
		if settled || !total.IsPositive() {
			continue
		}

		out = append(out, domain.Transaction{
			TransactionID:                occurrenceID("ddebit", acc.AccountID, settle),
			UserID:                       acc.UserID,
			AccountID:                    acc.LinkedAccountID,
			Amount:                       total,
			Type:                         domain.Expense,
			Status:                       domain.Potential,
			Date:                         settle,
			EffectiveDate:                settle,
			Description:                  acc.Name,
			DeferredDebitSourceAccountID: acc.AccountID,
		})
	}
	return out
}
