package biometric

import "context"

type MappingRepository interface {
	Create(ctx context.Context, mapping Mapping) (Mapping, error)
	GetByID(ctx context.Context, id string) (Mapping, error)

	// GetByBiometricID resolves a device identifier to its mapping,
	// active or not. The reconciler decides what to do with inactive ones.
	GetByBiometricID(ctx context.Context, biometricID string) (Mapping, error)

	List(ctx context.Context, filter MappingFilter) ([]Mapping, error)
	Update(ctx context.Context, req UpdateMappingRequest) (Mapping, error)
	Delete(ctx context.Context, id string) error
}
