package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
)

// passthroughTxManager runs the function directly; transactional
// boundaries are exercised by the repository integration tests.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type ledgerKey struct {
	employeeID string
	kind       ledger.Kind
}

// fakeLedgerRepo is an in-memory append-only store mirroring the
// repository contract.
type fakeLedgerRepo struct {
	txs    map[ledgerKey][]ledger.Transaction
	heads  map[ledgerKey]ledger.Balance
	nextID int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		txs:   make(map[ledgerKey][]ledger.Transaction),
		heads: make(map[ledgerKey]ledger.Balance),
	}
}

func (f *fakeLedgerRepo) Append(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	f.nextID++
	tx.ID = fmt.Sprintf("tx-%d", f.nextID)
	tx.CreatedAt = time.Now().UTC()
	key := ledgerKey{tx.EmployeeID, tx.Kind}
	f.txs[key] = append(f.txs[key], tx)
	return tx, nil
}

func (f *fakeLedgerRepo) ListAll(ctx context.Context, employeeID string, kind ledger.Kind) ([]ledger.Transaction, error) {
	return f.txs[ledgerKey{employeeID, kind}], nil
}

func (f *fakeLedgerRepo) List(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, int64, error) {
	all := f.txs[ledgerKey{filter.EmployeeID, filter.Kind}]
	return all, int64(len(all)), nil
}

func (f *fakeLedgerRepo) GetHead(ctx context.Context, employeeID string, kind ledger.Kind) (ledger.Balance, error) {
	key := ledgerKey{employeeID, kind}
	head, ok := f.heads[key]
	if !ok {
		return ledger.Balance{EmployeeID: employeeID, Kind: kind, Value: decimal.Zero}, nil
	}
	return head, nil
}

func (f *fakeLedgerRepo) LockHead(ctx context.Context, employeeID string, kind ledger.Kind) (ledger.Balance, error) {
	return f.GetHead(ctx, employeeID, kind)
}

func (f *fakeLedgerRepo) UpdateHead(ctx context.Context, employeeID string, kind ledger.Kind, balance decimal.Decimal) error {
	key := ledgerKey{employeeID, kind}
	f.heads[key] = ledger.Balance{
		EmployeeID: employeeID,
		Kind:       kind,
		Value:      balance,
		UpdatedAt:  time.Now().UTC(),
	}
	return nil
}

func newTestLedgerService() (ledger.Service, *fakeLedgerRepo) {
	repo := newFakeLedgerRepo()
	return NewLedgerService(passthroughTxManager{}, repo), repo
}

func TestPost_AppendsWithBalanceSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedgerService()

	first, err := svc.Post(ctx, ledger.PostTransactionRequest{
		EmployeeID: "emp-1",
		Kind:       "HOUR_BANK",
		Type:       "OVERTIME_ACCRUAL",
		Delta:      "45",
	})
	require.NoError(t, err)
	assert.Equal(t, "45", first.BalanceAfter)

	notes := "redeeming half a rest day"
	reason := "compensatory rest on 2026-03-06"
	second, err := svc.Post(ctx, ledger.PostTransactionRequest{
		EmployeeID: "emp-1",
		Kind:       "HOUR_BANK",
		Type:       "COMPENSATORY_REST_REDEMPTION",
		Delta:      "-30",
		Notes:      &notes,
		Reason:     &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "15", second.BalanceAfter)

	balance, err := svc.GetBalance(ctx, "emp-1", ledger.KindHourBank)
	require.NoError(t, err)
	assert.Equal(t, "15", balance.Balance)
	assert.Equal(t, "minutes", balance.Unit)
	assert.False(t, balance.IsNegative)
}

func TestPost_PolicyRejectionLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestLedgerService()

	// Manual adjustment without a justification.
	_, err := svc.Post(ctx, ledger.PostTransactionRequest{
		EmployeeID: "emp-1",
		Kind:       "HOUR_BANK",
		Type:       "MANUAL_ADJUSTMENT",
		Delta:      "-60",
	})
	assert.ErrorIs(t, err, ledger.ErrNotesRequired)
	assert.Empty(t, repo.txs)
}

func TestPost_BalanceMayGoNegative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedgerService()

	reason := "pre-approved personal errand"
	_, err := svc.Post(ctx, ledger.PostTransactionRequest{
		EmployeeID: "emp-1",
		Kind:       "HOUR_BANK",
		Type:       "PERMIT_DEBIT",
		Delta:      "-120",
		Reason:     &reason,
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, "emp-1", ledger.KindHourBank)
	require.NoError(t, err)
	assert.Equal(t, "-120", balance.Balance)
	assert.True(t, balance.IsNegative, "debt is reported, never blocked")
}

func TestPostRaw_RefusesInconsistentChain(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestLedgerService()

	// A history whose snapshot chain was tampered with.
	key := ledgerKey{"emp-1", ledger.KindHourBank}
	repo.txs[key] = []ledger.Transaction{
		{Delta: decimal.NewFromInt(45), BalanceAfter: decimal.NewFromInt(45)},
		{Delta: decimal.NewFromInt(-30), BalanceAfter: decimal.NewFromInt(20)},
	}
	repo.heads[key] = ledger.Balance{EmployeeID: "emp-1", Kind: ledger.KindHourBank, Value: decimal.NewFromInt(20)}

	_, err := svc.PostRaw(ctx, ledger.Transaction{
		EmployeeID: "emp-1",
		Kind:       ledger.KindHourBank,
		Type:       ledger.TxOvertimeAccrual,
		Delta:      decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ledger.ErrLedgerInconsistent)
	assert.Len(t, repo.txs[key], 2, "nothing may be appended to a broken chain")
}

func TestPostRaw_RefusesHeadDivergedFromReplay(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestLedgerService()

	key := ledgerKey{"emp-1", ledger.KindHourBank}
	repo.txs[key] = []ledger.Transaction{
		{Delta: decimal.NewFromInt(45), BalanceAfter: decimal.NewFromInt(45)},
	}
	// Head was overwritten out of band.
	repo.heads[key] = ledger.Balance{EmployeeID: "emp-1", Kind: ledger.KindHourBank, Value: decimal.NewFromInt(90)}

	_, err := svc.PostRaw(ctx, ledger.Transaction{
		EmployeeID: "emp-1",
		Kind:       ledger.KindHourBank,
		Type:       ledger.TxOvertimeAccrual,
		Delta:      decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ledger.ErrLedgerInconsistent)
}

func TestGetBalance_SurfacesInconsistencyOnRead(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestLedgerService()

	key := ledgerKey{"emp-1", ledger.KindVacation}
	repo.txs[key] = []ledger.Transaction{
		{Delta: decimal.NewFromFloat(1.25), BalanceAfter: decimal.NewFromFloat(1.25)},
	}
	repo.heads[key] = ledger.Balance{EmployeeID: "emp-1", Kind: ledger.KindVacation, Value: decimal.NewFromInt(7)}

	_, err := svc.GetBalance(ctx, "emp-1", ledger.KindVacation)
	assert.ErrorIs(t, err, ledger.ErrLedgerInconsistent)
}

func TestGetBalance_UnknownKind(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedgerService()

	_, err := svc.GetBalance(ctx, "emp-1", ledger.Kind("PTO"))
	assert.ErrorIs(t, err, ledger.ErrUnknownKind)
}

func TestGetBalance_EmptyLedgerIsZero(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedgerService()

	balance, err := svc.GetBalance(ctx, "emp-1", ledger.KindVacation)
	require.NoError(t, err)
	assert.Equal(t, "0", balance.Balance)
	assert.Equal(t, "days", balance.Unit)
}

func TestPost_VacationAccrualCarriesPeriodStart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedgerService()

	periodStart := "2026-03-01"
	tx, err := svc.Post(ctx, ledger.PostTransactionRequest{
		EmployeeID:  "emp-1",
		Kind:        "VACATION",
		Type:        "ACCRUAL",
		Delta:       "1.25",
		PeriodStart: &periodStart,
	})
	require.NoError(t, err)
	require.NotNil(t, tx.PeriodStart)
	assert.Equal(t, "2026-03-01", *tx.PeriodStart)
	assert.Equal(t, "1.25", tx.BalanceAfter)
}
