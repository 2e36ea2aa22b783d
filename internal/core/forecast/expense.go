package forecast

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
)

// ExpandRecurringExpenses materializes one POTENTIAL expense per occurrence of
// each rule, from the rule's start date up to its end date or the forecast
// horizon, whichever comes first. A rule whose start date is already past the
// horizon yields nothing; that is not an error.
func ExpandRecurringExpenses(rules []domain.RecurringExpense, today time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, rule := range rules {
		out = append(out, expandExpenseRule(rule, today)...)
	}
	return out
}

func expandExpenseRule(rule domain.RecurringExpense, today time.Time) []domain.Transaction {
	bound := ruleBound(rule.EndDate, today)

	var out []domain.Transaction
	for d := Day(rule.StartDate); d.Before(bound); d = NextOccurrence(d, rule.Frequency) {
		out = append(out, domain.Transaction{
			TransactionID:      occurrenceID("rexp", rule.RecurringExpenseID, d),
			UserID:             rule.UserID,
			AccountID:          rule.AccountID,
			CategoryID:         rule.CategoryID,
			Amount:             rule.Amount,
			Type:               domain.Expense,
			Status:             domain.Potential,
			Date:               d,
			EffectiveDate:      d,
			Description:        rule.Name,
			RecurringExpenseID: rule.RecurringExpenseID,
		})
	}
	return out
}
