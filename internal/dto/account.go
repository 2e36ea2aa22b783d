package dto

import (
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CURRENT SAVINGS DEFERRED_DEBIT"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	Icon           string             `json:"icon"`
	Color          string             `json:"color"`

	// Required for DEFERRED_DEBIT accounts, rejected otherwise.
	LinkedAccountID *string `json:"linkedAccountID"`
	DebitDay        *int    `json:"debitDay" binding:"omitempty,min=1,max=31"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name            *string          `json:"name"`
	Icon            *string          `json:"icon"`
	Color           *string          `json:"color"`
	InitialBalance  *decimal.Decimal `json:"initialBalance"`
	LinkedAccountID *string          `json:"linkedAccountID"`
	DebitDay        *int             `json:"debitDay" binding:"omitempty,min=1,max=31"`
}

// AccountResponse mirrors domain.Account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	InitialBalance  decimal.Decimal    `json:"initialBalance"`
	Icon            string             `json:"icon"`
	Color           string             `json:"color"`
	IsArchived      bool               `json:"isArchived"`
	LinkedAccountID string             `json:"linkedAccountID,omitempty"`
	DebitDay        int                `json:"debitDay,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		InitialBalance:  acc.InitialBalance,
		Icon:            acc.Icon,
		Color:           acc.Color,
		IsArchived:      acc.IsArchived,
		LinkedAccountID: acc.LinkedAccountID,
		DebitDay:        acc.DebitDay,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse is the payload of the current-balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      string          `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}
