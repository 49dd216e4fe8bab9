package ledger

import "errors"

var (
	ErrUnknownKind         = errors.New("unknown ledger kind")
	ErrUnknownTxType       = errors.New("transaction type not valid for this ledger")
	ErrNotesRequired       = errors.New("this transaction type requires a non-empty justification")
	ErrReasonRequired      = errors.New("this transaction type requires a reason")
	ErrPeriodStartRequired = errors.New("vacation accruals require a period start date")
	ErrInvalidDeltaSign    = errors.New("transaction delta has the wrong sign for its type")
	ErrZeroDelta           = errors.New("transaction delta must not be zero")

	// ErrLedgerInconsistent means the materialized balance does not match
	// the replayed transaction history. Balance-dependent writes for the
	// employee halt until the ledger is reconciled manually; it is never
	// auto-corrected.
	ErrLedgerInconsistent = errors.New("ledger head does not match transaction replay")
)
