package forecast

import (
	"github.com/jmallet/cashplan/internal/core/domain"
)

// ProjectReimbursements emits exactly one POTENTIAL income per PENDING
// reimbursement whose originating expense still exists. Account and category
// are inherited from the original expense, so forecasted reimbursement income
// nets against the expense category rather than appearing as generic income.
// A reimbursement whose source transaction was deleted emits nothing; a
// projection without provenance would be fabricated.
func ProjectReimbursements(reimbs []domain.Reimbursement, txns []domain.Transaction) []domain.Transaction {
	byID := make(map[string]domain.Transaction, len(txns))
	for _, t := range txns {
		byID[t.TransactionID] = t
	}

	var out []domain.Transaction
	for _, r := range reimbs {
		if r.Status != domain.ReimbursementPending {
			continue
		}
		source, ok := byID[r.SourceTransactionID]
		if !ok {
			continue
		}

		d := Day(r.ExpectedDate)
		out = append(out, domain.Transaction{
			TransactionID:   occurrenceID("reimb", r.ReimbursementID, d),
			UserID:          r.UserID,
			AccountID:       source.AccountID,
			CategoryID:      source.CategoryID,
			Amount:          r.ExpectedAmount,
			Type:            domain.Income,
			Status:          domain.Potential,
			Date:            d,
			EffectiveDate:   d,
			Description:     source.Description,
			ReimbursementID: r.ReimbursementID,
		})
	}
	return out
}
