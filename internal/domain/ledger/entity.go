package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects which of the two employee ledgers a transaction belongs
// to. Both share one engine; they differ only in unit and allowed
// transaction types.
type Kind string

const (
	KindHourBank Kind = "HOUR_BANK" // unit: minutes
	KindVacation Kind = "VACATION"  // unit: days
)

var KindValues = []string{
	string(KindHourBank),
	string(KindVacation),
}

// Unit returns the human unit of the ledger kind.
func (k Kind) Unit() string {
	if k == KindVacation {
		return "days"
	}
	return "minutes"
}

type TxType string

// Hour bank transaction types.
const (
	TxOvertimeAccrual            TxType = "OVERTIME_ACCRUAL"
	TxCompensatoryRestRedemption TxType = "COMPENSATORY_REST_REDEMPTION"
	TxPermitDebit                TxType = "PERMIT_DEBIT"
)

// Vacation transaction types.
const (
	TxVacationAccrual TxType = "ACCRUAL"
	TxVacationDebit   TxType = "VACATION_DEBIT"
)

// Shared transaction types.
const (
	TxManualAdjustment TxType = "MANUAL_ADJUSTMENT"
)

// Transaction is one immutable, balance-snapshotting ledger entry.
// Corrections are new transactions, never edits: the BalanceAfter chain
// is the audit trail.
type Transaction struct {
	ID           string
	EmployeeID   string
	Kind         Kind
	Type         TxType
	Delta        decimal.Decimal
	BalanceAfter decimal.Decimal
	Notes        *string
	Reason       *string
	PeriodStart  *time.Time // set on vacation accruals
	CreatedBy    *string
	CreatedAt    time.Time
}

// Balance is the materialized head of one employee's ledger. It must
// always equal the replayed sum of that ledger's deltas.
type Balance struct {
	EmployeeID string
	Kind       Kind
	Value      decimal.Decimal
	UpdatedAt  time.Time
}

// IsNegative flags a debt balance. Debt is informational and never
// blocks further postings.
func (b Balance) IsNegative() bool {
	return b.Value.IsNegative()
}
