package forecast

import (
	"sort"

	"github.com/jmallet/cashplan/internal/core/domain"
)

// dedupKey identifies a rule occurrence: once the user has validated an
// occurrence into a real transaction, the synthetic placeholder with the same
// key must disappear to avoid double counting.
func dedupKey(ruleID string, t domain.Transaction) string {
	return ruleID + "|" + Day(t.Date).Format(dateKeyFormat)
}

// MergeWithReal combines real transactions with the generated lists,
// suppressing any generated occurrence whose (rule, date) key matches a real
// transaction. The result is stably sorted by date descending, which is the
// display order; the forecast accumulator re-sorts ascending internally.
func MergeWithReal(real []domain.Transaction, generated ...[]domain.Transaction) []domain.Transaction {
	validated := make(map[string]struct{})
	for _, t := range real {
		if t.RecurringExpenseID != "" {
			validated[dedupKey(t.RecurringExpenseID, t)] = struct{}{}
		}
		if t.RecurringTransferID != "" {
			validated[dedupKey(t.RecurringTransferID, t)] = struct{}{}
		}
	}

	merged := make([]domain.Transaction, 0, len(real))
	merged = append(merged, real...)
	for _, list := range generated {
		for _, t := range list {
			if t.RecurringExpenseID != "" {
				if _, ok := validated[dedupKey(t.RecurringExpenseID, t)]; ok {
					continue
				}
			}
			if t.RecurringTransferID != "" {
				if _, ok := validated[dedupKey(t.RecurringTransferID, t)]; ok {
					continue
				}
			}
			merged = append(merged, t)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	return merged
}
