package forecast

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
)

// resolvedEndpoint is a transfer endpoint mapped down to the account that
// actually carries the money, plus the reserve tag when the endpoint is a
// reserve.
type resolvedEndpoint struct {
	accountID string
	reserveID string
}

// resolveEndpoint maps an endpoint to its carrying account. A reserve
// endpoint resolves to the reserve's owning account. Returns false when the
// referenced account or reserve does not exist.
func resolveEndpoint(e domain.TransferEndpoint, accounts map[string]domain.Account, reserves map[string]domain.Reserve) (resolvedEndpoint, bool) {
	switch e.Kind {
	case domain.EndpointAccount:
		if _, ok := accounts[e.ID]; !ok {
			return resolvedEndpoint{}, false
		}
		return resolvedEndpoint{accountID: e.ID}, true
	case domain.EndpointReserve:
		res, ok := reserves[e.ID]
		if !ok {
			return resolvedEndpoint{}, false
		}
		if _, ok := accounts[res.AccountID]; !ok {
			return resolvedEndpoint{}, false
		}
		return resolvedEndpoint{accountID: res.AccountID, reserveID: res.ReserveID}, true
	default:
		return resolvedEndpoint{}, false
	}
}

// ExpandRecurringTransfers materializes a POTENTIAL expense/income pair per
// occurrence of each rule. The two legs share a deterministic TransferID so
// they can always be identified together. When either endpoint cannot be
// resolved the occurrence is skipped entirely, neither leg is emitted, and
// iteration still advances to the next date; a rule with a dangling reference
// must not blank out the rest of the forecast or loop forever.
func ExpandRecurringTransfers(rules []domain.RecurringTransfer, accounts map[string]domain.Account, reserves map[string]domain.Reserve, today time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, rule := range rules {
		out = append(out, expandTransferRule(rule, accounts, reserves, today)...)
	}
	return out
}

func expandTransferRule(rule domain.RecurringTransfer, accounts map[string]domain.Account, reserves map[string]domain.Reserve, today time.Time) []domain.Transaction {
	bound := ruleBound(rule.EndDate, today)

	var out []domain.Transaction
	for d := Day(rule.StartDate); d.Before(bound); d = NextOccurrence(d, rule.Frequency) {
		src, srcOK := resolveEndpoint(rule.Source, accounts, reserves)
		dst, dstOK := resolveEndpoint(rule.Destination, accounts, reserves)
		if !srcOK || !dstOK {
			continue
		}

		transferID := occurrenceID("rtrf", rule.RecurringTransferID, d)
		out = append(out,
			domain.Transaction{
				TransactionID:       occurrenceID("rtrf-src", rule.RecurringTransferID, d),
				UserID:              rule.UserID,
				AccountID:           src.accountID,
				ReserveID:           src.reserveID,
				Amount:              rule.Amount,
				Type:                domain.Expense,
				Status:              domain.Potential,
				Date:                d,
				EffectiveDate:       d,
				Description:         rule.Name,
				TransferID:          transferID,
				RecurringTransferID: rule.RecurringTransferID,
			},
			domain.Transaction{
				TransactionID:       occurrenceID("rtrf-dst", rule.RecurringTransferID, d),
				UserID:              rule.UserID,
				AccountID:           dst.accountID,
				ReserveID:           dst.reserveID,
				Amount:              rule.Amount,
				Type:                domain.Income,
				Status:              domain.Potential,
				Date:                d,
				EffectiveDate:       d,
				Description:         rule.Name,
				TransferID:          transferID,
				RecurringTransferID: rule.RecurringTransferID,
			},
		)
	}
	return out
}
