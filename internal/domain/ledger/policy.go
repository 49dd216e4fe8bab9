package ledger

import (
	"github.com/shopspring/decimal"
)

// deltaSign constrains the sign of a transaction type's delta.
type deltaSign int

const (
	signAny deltaSign = iota
	signPositive
	signNegative
)

// txPolicy declares the validation rules of one transaction type.
type txPolicy struct {
	requiresNotes       bool
	requiresReason      bool
	requiresPeriodStart bool
	sign                deltaSign
}

// policies is the closed per-kind policy table. A type absent from its
// kind's table is rejected outright.
var policies = map[Kind]map[TxType]txPolicy{
	KindHourBank: {
		TxOvertimeAccrual:            {sign: signPositive},
		TxCompensatoryRestRedemption: {requiresReason: true, sign: signNegative},
		TxPermitDebit:                {requiresReason: true, sign: signNegative},
		TxManualAdjustment:           {requiresNotes: true, sign: signAny},
	},
	KindVacation: {
		TxVacationAccrual:  {requiresPeriodStart: true, sign: signPositive},
		TxVacationDebit:    {requiresReason: true, sign: signNegative},
		TxManualAdjustment: {requiresNotes: true, sign: signAny},
	},
}

// TxTypesFor returns the transaction types a ledger kind accepts.
func TxTypesFor(kind Kind) []TxType {
	table, ok := policies[kind]
	if !ok {
		return nil
	}
	types := make([]TxType, 0, len(table))
	for t := range table {
		types = append(types, t)
	}
	return types
}

// ValidatePosting checks a prospective transaction against the policy
// table before any state is touched.
func ValidatePosting(tx Transaction) error {
	table, ok := policies[tx.Kind]
	if !ok {
		return ErrUnknownKind
	}
	policy, ok := table[tx.Type]
	if !ok {
		return ErrUnknownTxType
	}

	if tx.Delta.Equal(decimal.Zero) {
		return ErrZeroDelta
	}

	switch policy.sign {
	case signPositive:
		if tx.Delta.IsNegative() {
			return ErrInvalidDeltaSign
		}
	case signNegative:
		if tx.Delta.IsPositive() {
			return ErrInvalidDeltaSign
		}
	}

	if policy.requiresNotes && (tx.Notes == nil || *tx.Notes == "") {
		return ErrNotesRequired
	}
	if policy.requiresReason && (tx.Reason == nil || *tx.Reason == "") {
		return ErrReasonRequired
	}
	if policy.requiresPeriodStart && tx.PeriodStart == nil {
		return ErrPeriodStartRequired
	}

	return nil
}

// Replay folds transactions in creation order and returns the final
// balance. The invariant balanceAfter[n] = balanceAfter[n-1] + delta[n]
// makes this equal to the last snapshot on a consistent ledger.
func Replay(txs []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.Delta)
	}
	return balance
}

// VerifyChain checks every BalanceAfter snapshot against the running
// sum. It returns ErrLedgerInconsistent on the first divergence.
func VerifyChain(txs []Transaction) error {
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.Delta)
		if !tx.BalanceAfter.Equal(balance) {
			return ErrLedgerInconsistent
		}
	}
	return nil
}
