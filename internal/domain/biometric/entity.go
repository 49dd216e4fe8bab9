package biometric

import "time"

// Mapping links a device-side biometric identifier to an employee.
// Inactive mappings are kept for audit but no longer resolve imports.
type Mapping struct {
	ID          string
	BiometricID string
	EmployeeID  string
	Active      bool
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

// ImportRow is one parsed line of a punch export file.
type ImportRow struct {
	Line        int
	BiometricID string
	PunchedAt   time.Time
}

// RowError records why a single row was not imported. Row errors never
// abort the batch; operators fix mappings and re-run.
type RowError struct {
	Line        int    `json:"line"`
	BiometricID string `json:"biometric_id"`
	Timestamp   string `json:"timestamp,omitempty"`
	Reason      string `json:"reason"`
}

// ImportResult summarizes one reconciliation run.
type ImportResult struct {
	BatchID  string     `json:"batch_id"`
	Imported int        `json:"imported"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`

	// RecompiledDays counts the distinct employee-days rebuilt after the fold.
	RecompiledDays int `json:"recompiled_days"`
}
