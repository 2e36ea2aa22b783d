package repositories

import (
	"context"
	"time"

	"github.com/jmallet/cashplan/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint". Only REAL transactions are ever persisted, so the repository
// has no status filter.
type TransactionFilter struct {
	AccountID  string
	ReserveID  string
	CategoryID string
	From       *time.Time // Inclusive, on Date
	To         *time.Time // Inclusive, on Date
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, date-descending list of a user's transactions.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)

	// ListAllTransactions retrieves every transaction of a user, date-descending.
	// This is the forecast engine's input; it is unpaginated on purpose.
	ListAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new real transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions persists several transactions atomically (transfer legs).
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction permanently.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// DeleteTransactionsByTransferID removes both legs of a transfer.
	DeleteTransactionsByTransferID(ctx context.Context, transferID string) error
}

// TransactionRepository combines all transaction-related repository interfaces.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
