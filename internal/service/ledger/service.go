package ledger

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type ledgerServiceImpl struct {
	txManager database.TxManager
	repo      ledger.Repository
}

func NewLedgerService(txManager database.TxManager, repo ledger.Repository) ledger.Service {
	return &ledgerServiceImpl{
		txManager: txManager,
		repo:      repo,
	}
}

// Post implements ledger.Service.
func (s *ledgerServiceImpl) Post(ctx context.Context, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		return ledger.TransactionResponse{}, fmt.Errorf("invalid delta: %w", err)
	}

	tx := ledger.Transaction{
		EmployeeID: req.EmployeeID,
		Kind:       ledger.Kind(req.Kind),
		Type:       ledger.TxType(req.Type),
		Delta:      delta,
		Notes:      req.Notes,
		Reason:     req.Reason,
		CreatedBy:  actorUserID(ctx),
	}
	if req.PeriodStart != nil && *req.PeriodStart != "" {
		periodStart, _ := time.Parse("2006-01-02", *req.PeriodStart)
		tx.PeriodStart = &periodStart
	}

	stored, err := s.PostRaw(ctx, tx)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	return mapTransactionToResponse(stored), nil
}

// PostRaw implements ledger.Service. The head row lock serializes
// postings per employee and ledger; the replay check before the append
// refuses to extend an inconsistent chain.
func (s *ledgerServiceImpl) PostRaw(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	if err := ledger.ValidatePosting(tx); err != nil {
		return ledger.Transaction{}, err
	}

	var stored ledger.Transaction
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		head, err := s.repo.LockHead(ctx, tx.EmployeeID, tx.Kind)
		if err != nil {
			return err
		}

		history, err := s.repo.ListAll(ctx, tx.EmployeeID, tx.Kind)
		if err != nil {
			return err
		}
		if err := ledger.VerifyChain(history); err != nil {
			return err
		}
		if !ledger.Replay(history).Equal(head.Value) {
			return ledger.ErrLedgerInconsistent
		}

		tx.BalanceAfter = head.Value.Add(tx.Delta)
		stored, err = s.repo.Append(ctx, tx)
		if err != nil {
			return err
		}

		return s.repo.UpdateHead(ctx, tx.EmployeeID, tx.Kind, tx.BalanceAfter)
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return stored, nil
}

// GetBalance implements ledger.Service. Reads are verified against
// replay too, so a corrupted ledger surfaces on the first look.
func (s *ledgerServiceImpl) GetBalance(ctx context.Context, employeeID string, kind ledger.Kind) (ledger.BalanceResponse, error) {
	if kind != ledger.KindHourBank && kind != ledger.KindVacation {
		return ledger.BalanceResponse{}, ledger.ErrUnknownKind
	}

	head, err := s.repo.GetHead(ctx, employeeID, kind)
	if err != nil {
		return ledger.BalanceResponse{}, err
	}

	history, err := s.repo.ListAll(ctx, employeeID, kind)
	if err != nil {
		return ledger.BalanceResponse{}, err
	}
	if !ledger.Replay(history).Equal(head.Value) {
		return ledger.BalanceResponse{}, ledger.ErrLedgerInconsistent
	}

	return ledger.BalanceResponse{
		EmployeeID: employeeID,
		Kind:       string(kind),
		Unit:       kind.Unit(),
		Balance:    head.Value.String(),
		IsNegative: head.IsNegative(),
	}, nil
}

// ListTransactions implements ledger.Service.
func (s *ledgerServiceImpl) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) (ledger.ListTransactionsResponse, error) {
	if err := filter.Validate(); err != nil {
		return ledger.ListTransactionsResponse{}, err
	}

	txs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ledger.ListTransactionsResponse{}, fmt.Errorf("failed to list ledger transactions: %w", err)
	}

	response := ledger.ListTransactionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
	for _, tx := range txs {
		response.Transactions = append(response.Transactions, mapTransactionToResponse(tx))
	}
	return response, nil
}

// actorUserID reads the acting user from the verified token, if any.
// Internal callers (scheduled jobs) post without one.
func actorUserID(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	return &userID
}

func mapTransactionToResponse(tx ledger.Transaction) ledger.TransactionResponse {
	response := ledger.TransactionResponse{
		ID:           tx.ID,
		EmployeeID:   tx.EmployeeID,
		Kind:         string(tx.Kind),
		Type:         string(tx.Type),
		Delta:        tx.Delta.String(),
		BalanceAfter: tx.BalanceAfter.String(),
		Notes:        tx.Notes,
		Reason:       tx.Reason,
		CreatedBy:    tx.CreatedBy,
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.PeriodStart != nil {
		periodStart := tx.PeriodStart.Format("2006-01-02")
		response.PeriodStart = &periodStart
	}
	return response
}
