package biometric

import (
	"io"

	"github.com/praxishr/timecontrol-backend-go/internal/pkg/validator"
)

// ========================================
// MAPPING DTOs
// ========================================

type CreateMappingRequest struct {
	BiometricID string  `json:"biometric_id"`
	EmployeeID  string  `json:"employee_id"`
	Active      bool    `json:"active"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateMappingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BiometricID) {
		errs = append(errs, validator.ValidationError{
			Field:   "biometric_id",
			Message: "biometric_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateMappingRequest struct {
	ID         string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *UpdateMappingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "mapping id is required",
		})
	}

	if r.EmployeeID == nil && r.Active == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one updatable field is required",
		})
	}

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MappingResponse struct {
	ID           string  `json:"id"`
	BiometricID  string  `json:"biometric_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Active       bool    `json:"active"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type MappingFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// ========================================
// IMPORT DTOs
// ========================================

// ImportRequest carries the uploaded punch export file. Filename decides
// the parser: .xlsx or .csv.
type ImportRequest struct {
	Filename      string    `json:"-"`
	File          io.Reader `json:"-"`
	ForceReimport bool      `json:"force_reimport"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "punch export file is required",
		})
	}

	if r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "punch export file is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
