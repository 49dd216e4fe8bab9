package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type ledgerRepositoryImpl struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.Repository {
	return &ledgerRepositoryImpl{db: db}
}

// Append implements ledger.Repository. Rows are insert-only; there is
// no update or delete statement anywhere in this file.
func (l *ledgerRepositoryImpl) Append(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		INSERT INTO ledger_transactions (
			id, employee_id, kind, type, delta, balance_after,
			notes, reason, period_start, created_by, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		tx.EmployeeID, tx.Kind, tx.Type, tx.Delta, tx.BalanceAfter,
		tx.Notes, tx.Reason, tx.PeriodStart, tx.CreatedBy,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("failed to append ledger transaction: %w", err)
	}

	return tx, nil
}

// ListAll implements ledger.Repository. Creation order is the replay order.
func (l *ledgerRepositoryImpl) ListAll(ctx context.Context, employeeID string, kind ledger.Kind) ([]ledger.Transaction, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, employee_id, kind, type, delta, balance_after,
			notes, reason, period_start, created_by, created_at
		FROM ledger_transactions
		WHERE employee_id = $1 AND kind = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// List implements ledger.Repository.
func (l *ledgerRepositoryImpl) List(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, int64, error) {
	q := GetQuerier(ctx, l.db)

	where := "employee_id = $1 AND kind = $2"
	args := []interface{}{filter.EmployeeID, filter.Kind}
	argIdx := 3

	if filter.Type != nil && *filter.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND created_at < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM ledger_transactions WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger transactions: %w", err)
	}

	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT id, employee_id, kind, type, delta, balance_after,
			notes, reason, period_start, created_by, created_at
		FROM ledger_transactions
		WHERE %s
		ORDER BY created_at %s, id %s
		LIMIT $%d OFFSET $%d
	`, where, sortOrder, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ledger transactions: %w", err)
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// GetHead implements ledger.Repository. A missing head row reads as a
// zero balance; the row is only materialized by the first posting.
func (l *ledgerRepositoryImpl) GetHead(ctx context.Context, employeeID string, kind ledger.Kind) (ledger.Balance, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT employee_id, kind, balance, updated_at
		FROM ledger_heads
		WHERE employee_id = $1 AND kind = $2
	`

	var balance ledger.Balance
	err := q.QueryRow(ctx, query, employeeID, kind).Scan(
		&balance.EmployeeID, &balance.Kind, &balance.Value, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Balance{EmployeeID: employeeID, Kind: kind, Value: decimal.Zero}, nil
		}
		return ledger.Balance{}, err
	}
	return balance, nil
}

// LockHead implements ledger.Repository. The insert makes sure the row
// exists, then the SELECT ... FOR UPDATE serializes every concurrent
// posting against the same employee ledger.
func (l *ledgerRepositoryImpl) LockHead(ctx context.Context, employeeID string, kind ledger.Kind) (ledger.Balance, error) {
	q := GetQuerier(ctx, l.db)

	ensure := `
		INSERT INTO ledger_heads (employee_id, kind, balance, updated_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (employee_id, kind) DO NOTHING
	`
	if _, err := q.Exec(ctx, ensure, employeeID, kind); err != nil {
		return ledger.Balance{}, fmt.Errorf("failed to ensure ledger head: %w", err)
	}

	query := `
		SELECT employee_id, kind, balance, updated_at
		FROM ledger_heads
		WHERE employee_id = $1 AND kind = $2
		FOR UPDATE
	`

	var balance ledger.Balance
	err := q.QueryRow(ctx, query, employeeID, kind).Scan(
		&balance.EmployeeID, &balance.Kind, &balance.Value, &balance.UpdatedAt,
	)
	if err != nil {
		return ledger.Balance{}, fmt.Errorf("failed to lock ledger head: %w", err)
	}
	return balance, nil
}

// UpdateHead implements ledger.Repository.
func (l *ledgerRepositoryImpl) UpdateHead(ctx context.Context, employeeID string, kind ledger.Kind, balance decimal.Decimal) error {
	q := GetQuerier(ctx, l.db)
	query := `
		UPDATE ledger_heads
		SET balance = $3, updated_at = NOW()
		WHERE employee_id = $1 AND kind = $2
	`
	commandTag, err := q.Exec(ctx, query, employeeID, kind, balance)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("ledger head missing for employee %s kind %s", employeeID, kind)
	}
	return nil
}

func scanTransactions(rows pgx.Rows) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	for rows.Next() {
		var tx ledger.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.EmployeeID, &tx.Kind, &tx.Type, &tx.Delta, &tx.BalanceAfter,
			&tx.Notes, &tx.Reason, &tx.PeriodStart, &tx.CreatedBy, &tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
