package dto

import (
	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a real
// transaction. EffectiveDate defaults to Date when omitted.
type CreateTransactionRequest struct {
	AccountID     string                 `json:"accountID" binding:"required"`
	ReserveID     string                 `json:"reserveID"`
	CategoryID    string                 `json:"categoryID"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date          string                 `json:"date" binding:"required,datetime=2006-01-02"`
	EffectiveDate string                 `json:"effectiveDate" binding:"omitempty,datetime=2006-01-02"`
	Description   string                 `json:"description"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	AccountID     *string                 `json:"accountID"`
	ReserveID     *string                 `json:"reserveID"`
	CategoryID    *string                 `json:"categoryID"`
	Amount        *decimal.Decimal        `json:"amount"`
	Type          *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Date          *string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	EffectiveDate *string                 `json:"effectiveDate" binding:"omitempty,datetime=2006-01-02"`
	Description   *string                 `json:"description"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  string `form:"accountID"`
	ReserveID  string `form:"reserveID"`
	CategoryID string `form:"categoryID"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// ValidateOccurrenceRequest turns one generated occurrence into a real
// transaction. Exactly one of RecurringExpenseID and RecurringTransferID must
// be set; the date names the occurrence being validated, which makes the
// generated placeholder with the same (rule, date) key disappear.
type ValidateOccurrenceRequest struct {
	RecurringExpenseID  string `json:"recurringExpenseID"`
	RecurringTransferID string `json:"recurringTransferID"`
	Date                string `json:"date" binding:"required,datetime=2006-01-02"`

	// Optional override; defaults to the rule amount.
	Amount *decimal.Decimal `json:"amount"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	AccountID     string                   `json:"accountID"`
	ReserveID     string                   `json:"reserveID,omitempty"`
	CategoryID    string                   `json:"categoryID,omitempty"`
	Amount        decimal.Decimal          `json:"amount"`
	Type          domain.TransactionType   `json:"type"`
	Status        domain.TransactionStatus `json:"status"`
	Date          string                   `json:"date"`
	EffectiveDate string                   `json:"effectiveDate"`
	Description   string                   `json:"description,omitempty"`

	TransferID                   string `json:"transferID,omitempty"`
	RecurringExpenseID           string `json:"recurringExpenseID,omitempty"`
	RecurringTransferID          string `json:"recurringTransferID,omitempty"`
	ReimbursementID              string `json:"reimbursementID,omitempty"`
	DeferredDebitSourceAccountID string `json:"deferredDebitSourceAccountID,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:                t.TransactionID,
		AccountID:                    t.AccountID,
		ReserveID:                    t.ReserveID,
		CategoryID:                   t.CategoryID,
		Amount:                       t.Amount,
		Type:                         t.Type,
		Status:                       t.Status,
		Date:                         FormatDate(t.Date),
		EffectiveDate:                FormatDate(t.EffectiveDate),
		Description:                  t.Description,
		TransferID:                   t.TransferID,
		RecurringExpenseID:           t.RecurringExpenseID,
		RecurringTransferID:          t.RecurringTransferID,
		ReimbursementID:              t.ReimbursementID,
		DeferredDebitSourceAccountID: t.DeferredDebitSourceAccountID,
	}
}

// ToListTransactionResponse converts a slice of transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
