package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidatePosting_OvertimeAccrual(t *testing.T) {
	tx := Transaction{
		EmployeeID: "emp-1",
		Kind:       KindHourBank,
		Type:       TxOvertimeAccrual,
		Delta:      dec("45"),
	}
	require.NoError(t, ValidatePosting(tx))

	tx.Delta = dec("-45")
	assert.ErrorIs(t, ValidatePosting(tx), ErrInvalidDeltaSign)
}

func TestValidatePosting_ManualAdjustmentRequiresNotes(t *testing.T) {
	tx := Transaction{
		EmployeeID: "emp-1",
		Kind:       KindHourBank,
		Type:       TxManualAdjustment,
		Delta:      dec("-60"),
	}
	assert.ErrorIs(t, ValidatePosting(tx), ErrNotesRequired)

	tx.Notes = strPtr("correcting a double import on 2026-03-02")
	assert.NoError(t, ValidatePosting(tx))

	// Either sign is allowed once justified.
	tx.Delta = dec("60")
	assert.NoError(t, ValidatePosting(tx))
}

func TestValidatePosting_DebitsRequireReason(t *testing.T) {
	tx := Transaction{
		EmployeeID: "emp-1",
		Kind:       KindHourBank,
		Type:       TxPermitDebit,
		Delta:      dec("-120"),
	}
	assert.ErrorIs(t, ValidatePosting(tx), ErrReasonRequired)

	tx.Reason = strPtr("personal errand, pre-approved")
	assert.NoError(t, ValidatePosting(tx))

	tx.Delta = dec("120")
	assert.ErrorIs(t, ValidatePosting(tx), ErrInvalidDeltaSign)
}

func TestValidatePosting_VacationAccrualRequiresPeriodStart(t *testing.T) {
	tx := Transaction{
		EmployeeID: "emp-1",
		Kind:       KindVacation,
		Type:       TxVacationAccrual,
		Delta:      dec("1.25"),
	}
	assert.ErrorIs(t, ValidatePosting(tx), ErrPeriodStartRequired)

	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tx.PeriodStart = &period
	assert.NoError(t, ValidatePosting(tx))
}

func TestValidatePosting_RejectsZeroDelta(t *testing.T) {
	tx := Transaction{
		EmployeeID: "emp-1",
		Kind:       KindHourBank,
		Type:       TxOvertimeAccrual,
		Delta:      decimal.Zero,
	}
	assert.ErrorIs(t, ValidatePosting(tx), ErrZeroDelta)
}

func TestValidatePosting_TypeMustBelongToKind(t *testing.T) {
	tx := Transaction{
		EmployeeID: "emp-1",
		Kind:       KindVacation,
		Type:       TxOvertimeAccrual,
		Delta:      dec("45"),
	}
	assert.ErrorIs(t, ValidatePosting(tx), ErrUnknownTxType)

	tx.Kind = Kind("PTO")
	assert.ErrorIs(t, ValidatePosting(tx), ErrUnknownKind)
}

func TestReplayAndVerifyChain(t *testing.T) {
	txs := []Transaction{
		{Delta: dec("45"), BalanceAfter: dec("45")},
		{Delta: dec("-30"), BalanceAfter: dec("15")},
		{Delta: dec("7"), BalanceAfter: dec("22")},
	}

	assert.True(t, Replay(txs).Equal(dec("22")))
	assert.NoError(t, VerifyChain(txs))
}

func TestVerifyChain_DetectsBrokenSnapshot(t *testing.T) {
	txs := []Transaction{
		{Delta: dec("45"), BalanceAfter: dec("45")},
		{Delta: dec("-30"), BalanceAfter: dec("20")}, // tampered
	}

	assert.ErrorIs(t, VerifyChain(txs), ErrLedgerInconsistent)
}

func TestVerifyChain_EmptyLedgerIsConsistent(t *testing.T) {
	assert.NoError(t, VerifyChain(nil))
	assert.True(t, Replay(nil).Equal(decimal.Zero))
}

func TestBalance_IsNegative(t *testing.T) {
	assert.True(t, Balance{Value: dec("-0.5")}.IsNegative())
	assert.False(t, Balance{Value: decimal.Zero}.IsNegative())
	assert.False(t, Balance{Value: dec("3")}.IsNegative())
}

func TestKind_Unit(t *testing.T) {
	assert.Equal(t, "minutes", KindHourBank.Unit())
	assert.Equal(t, "days", KindVacation.Unit())
}
