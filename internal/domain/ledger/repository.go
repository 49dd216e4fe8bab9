package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository is the append-only store behind both ledgers. There is no
// update or delete: corrections are new transactions.
type Repository interface {
	// Append inserts the transaction. The caller computes BalanceAfter
	// under the head lock.
	Append(ctx context.Context, tx Transaction) (Transaction, error)

	// ListAll returns the employee's full history for a kind in creation
	// order. Used for replay verification.
	ListAll(ctx context.Context, employeeID string, kind Kind) ([]Transaction, error)

	List(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)

	// GetHead returns the materialized balance row.
	GetHead(ctx context.Context, employeeID string, kind Kind) (Balance, error)

	// LockHead acquires the employee's per-ledger head row FOR UPDATE,
	// creating it at zero if missing. Must be called inside a
	// transaction; the lock serializes concurrent postings.
	LockHead(ctx context.Context, employeeID string, kind Kind) (Balance, error)

	// UpdateHead rewrites the materialized balance under the held lock.
	UpdateHead(ctx context.Context, employeeID string, kind Kind, balance decimal.Decimal) error
}
