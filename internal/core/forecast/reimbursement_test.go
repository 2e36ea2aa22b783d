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

func TestProjectReimbursements_PendingInheritsSourceAccountAndCategory(t *testing.T) {
	source := domain.Transaction{
		TransactionID: "txn-src",
		UserID:        "user-1",
		AccountID:     "acc-1",
		CategoryID:    "cat-health",
		Amount:        decimal.NewFromInt(50),
		Type:          domain.Expense,
		Status:        domain.Real,
		Date:          date(2026, time.January, 10),
		EffectiveDate: date(2026, time.January, 10),
	}
	reimb := domain.Reimbursement{
		ReimbursementID:     "reimb-1",
		UserID:              "user-1",
		SourceTransactionID: "txn-src",
		Status:              domain.ReimbursementPending,
		ExpectedAmount:      decimal.NewFromInt(50),
		ExpectedDate:        date(2026, time.April, 1),
	}

	got := forecast.ProjectReimbursements([]domain.Reimbursement{reimb}, []domain.Transaction{source})

	require.Len(t, got, 1)
	projected := got[0]
	assert.Equal(t, domain.Income, projected.Type)
	assert.Equal(t, domain.Potential, projected.Status)
	assert.Equal(t, "acc-1", projected.AccountID)
	assert.Equal(t, "cat-health", projected.CategoryID, "income nets against the expense category")
	assert.True(t, projected.Amount.Equal(reimb.ExpectedAmount))
	assert.True(t, projected.Date.Equal(reimb.ExpectedDate))
	assert.Equal(t, "reimb-1", projected.ReimbursementID)
}

func TestProjectReimbursements_ReceivedEmitsNothing(t *testing.T) {
	source := domain.Transaction{TransactionID: "txn-src", AccountID: "acc-1"}
	reimb := domain.Reimbursement{
		ReimbursementID:     "reimb-1",
		SourceTransactionID: "txn-src",
		Status:              domain.ReimbursementReceived,
		ExpectedAmount:      decimal.NewFromInt(50),
		ExpectedDate:        date(2026, time.April, 1),
	}

	got := forecast.ProjectReimbursements([]domain.Reimbursement{reimb}, []domain.Transaction{source})

	assert.Empty(t, got)
}

func TestProjectReimbursements_MissingSourceEmitsNothing(t *testing.T) {
	reimb := domain.Reimbursement{
		ReimbursementID:     "reimb-1",
		SourceTransactionID: "txn-deleted",
		Status:              domain.ReimbursementPending,
		ExpectedAmount:      decimal.NewFromInt(50),
		ExpectedDate:        date(2026, time.April, 1),
	}

	got := forecast.ProjectReimbursements([]domain.Reimbursement{reimb}, nil)

	assert.Empty(t, got)
}
