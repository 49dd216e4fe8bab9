package biometric

import "context"

// BiometricService covers mapping administration and batch import
// reconciliation.
type BiometricService interface {
	CreateMapping(ctx context.Context, req CreateMappingRequest) (MappingResponse, error)
	ListMappings(ctx context.Context, filter MappingFilter) ([]MappingResponse, error)
	UpdateMapping(ctx context.Context, req UpdateMappingRequest) (MappingResponse, error)
	DeleteMapping(ctx context.Context, id string) error

	// ImportBatch ingests a punch export file row by row. Unmappable rows
	// are collected as errors, existing punches are skipped unless
	// ForceReimport, and every touched employee-day is recompiled after
	// the fold. A bad row never aborts the batch.
	ImportBatch(ctx context.Context, req ImportRequest) (ImportResult, error)
}
