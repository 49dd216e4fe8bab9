package biometric

import "errors"

var (
	ErrMappingNotFound     = errors.New("biometric mapping not found")
	ErrBiometricIDMapped   = errors.New("biometric identifier is already mapped")
	ErrUnsupportedFileType = errors.New("unsupported punch export format, expected .xlsx or .csv")
	ErrEmptyBatch          = errors.New("punch export batch contains no rows")
)
