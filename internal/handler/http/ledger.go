package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/response"
)

type LedgerHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	PostTransaction(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.Service
}

func NewLedgerHandler(ledgerService ledger.Service) LedgerHandler {
	return &ledgerHandlerImpl{
		ledgerService: ledgerService,
	}
}

func (h *ledgerHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	kind := ledger.Kind(chi.URLParam(r, "kind"))
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.ledgerService.GetBalance(r.Context(), employeeID, kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ledgerHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := ledger.TransactionFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Kind:       ledger.Kind(chi.URLParam(r, "kind")),
		SortOrder:  query.Get("sort_order"),
	}
	if txType := query.Get("type"); txType != "" {
		filter.Type = &txType
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if page := query.Get("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := query.Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.ledgerService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Transactions, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *ledgerHandlerImpl) PostTransaction(w http.ResponseWriter, r *http.Request) {
	var req ledger.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.Kind = chi.URLParam(r, "kind")
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.ledgerService.Post(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction posted successfully", result)
}
