package ledger

import (
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/validator"
)

// ========================================
// LEDGER DTOs
// ========================================

type PostTransactionRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Kind        string  `json:"kind"`
	Type        string  `json:"type"`
	Delta       string  `json:"delta"` // signed decimal, minutes or days
	Notes       *string `json:"notes,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	PeriodStart *string `json:"period_start,omitempty"` // YYYY-MM-DD
}

// Validate checks shape only; type-specific policy (notes/reason/sign)
// is enforced by ValidatePosting so the rules live in one table.
func (r *PostTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: HOUR_BANK, VACATION",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}

	if !validator.IsValidDecimal(r.Delta) {
		errs = append(errs, validator.ValidationError{
			Field:   "delta",
			Message: "delta must be a signed decimal number",
		})
	}

	if r.PeriodStart != nil {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_start",
				Message: "period_start must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransactionFilter struct {
	EmployeeID string  `json:"employee_id"`
	Kind       Kind    `json:"kind"`
	Type       *string `json:"type,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting: ascending is the integrity order; descending for display.
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *TransactionFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(string(f.Kind), KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: HOUR_BANK, VACATION",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransactionResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Kind         string  `json:"kind"`
	Type         string  `json:"type"`
	Delta        string  `json:"delta"`
	BalanceAfter string  `json:"balance_after"`
	Notes        *string `json:"notes,omitempty"`
	Reason       *string `json:"reason,omitempty"`
	PeriodStart  *string `json:"period_start,omitempty"`
	CreatedBy    *string `json:"created_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Kind       string `json:"kind"`
	Unit       string `json:"unit"`
	Balance    string `json:"balance"`
	IsNegative bool   `json:"is_negative"`
}

type ListTransactionsResponse struct {
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
	Transactions []TransactionResponse `json:"transactions"`
}
