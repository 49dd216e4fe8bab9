package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service is the shared engine over the hour bank and vacation ledgers.
type Service interface {
	// Post validates the transaction against the policy table, locks the
	// employee's head row, verifies the head against replay and appends
	// with the new balance snapshot. Returns the stored transaction.
	Post(ctx context.Context, req PostTransactionRequest) (TransactionResponse, error)

	// PostRaw is Post for internal callers that already hold a domain
	// transaction (overtime approval, scheduled accrual). It runs inside
	// the caller's database transaction when one is carried in ctx.
	PostRaw(ctx context.Context, tx Transaction) (Transaction, error)

	// GetBalance reads the materialized head, replay-verified.
	GetBalance(ctx context.Context, employeeID string, kind Kind) (BalanceResponse, error)

	ListTransactions(ctx context.Context, filter TransactionFilter) (ListTransactionsResponse, error)
}

// MinutesDelta converts whole minutes into a ledger delta.
func MinutesDelta(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes))
}
