package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/biometric"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
)

type mappingRepositoryImpl struct {
	db *database.DB
}

func NewMappingRepository(db *database.DB) biometric.MappingRepository {
	return &mappingRepositoryImpl{db: db}
}

// Create implements biometric.MappingRepository.
func (m *mappingRepositoryImpl) Create(ctx context.Context, mapping biometric.Mapping) (biometric.Mapping, error) {
	q := GetQuerier(ctx, m.db)
	query := `
		INSERT INTO biometric_mappings (
			id, biometric_id, employee_id, active, notes, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		mapping.BiometricID, mapping.EmployeeID, mapping.Active, mapping.Notes,
	).Scan(&mapping.ID, &mapping.CreatedAt, &mapping.UpdatedAt)
	if err != nil {
		return biometric.Mapping{}, err
	}

	return mapping, nil
}

// GetByID implements biometric.MappingRepository.
func (m *mappingRepositoryImpl) GetByID(ctx context.Context, id string) (biometric.Mapping, error) {
	q := GetQuerier(ctx, m.db)
	query := `
		SELECT bm.id, bm.biometric_id, bm.employee_id, bm.active, bm.notes,
			bm.created_at, bm.updated_at, e.full_name
		FROM biometric_mappings bm
		LEFT JOIN employees e ON e.id = bm.employee_id
		WHERE bm.id = $1
	`

	var mapping biometric.Mapping
	err := q.QueryRow(ctx, query, id).Scan(
		&mapping.ID, &mapping.BiometricID, &mapping.EmployeeID, &mapping.Active,
		&mapping.Notes, &mapping.CreatedAt, &mapping.UpdatedAt, &mapping.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return biometric.Mapping{}, biometric.ErrMappingNotFound
		}
		return biometric.Mapping{}, err
	}
	return mapping, nil
}

// GetByBiometricID implements biometric.MappingRepository.
func (m *mappingRepositoryImpl) GetByBiometricID(ctx context.Context, biometricID string) (biometric.Mapping, error) {
	q := GetQuerier(ctx, m.db)
	query := `
		SELECT id, biometric_id, employee_id, active, notes, created_at, updated_at
		FROM biometric_mappings
		WHERE biometric_id = $1
	`

	var mapping biometric.Mapping
	err := q.QueryRow(ctx, query, biometricID).Scan(
		&mapping.ID, &mapping.BiometricID, &mapping.EmployeeID, &mapping.Active,
		&mapping.Notes, &mapping.CreatedAt, &mapping.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return biometric.Mapping{}, biometric.ErrMappingNotFound
		}
		return biometric.Mapping{}, err
	}
	return mapping, nil
}

// List implements biometric.MappingRepository.
func (m *mappingRepositoryImpl) List(ctx context.Context, filter biometric.MappingFilter) ([]biometric.Mapping, error) {
	q := GetQuerier(ctx, m.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND bm.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Active != nil {
		where += fmt.Sprintf(" AND bm.active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}

	query := `
		SELECT bm.id, bm.biometric_id, bm.employee_id, bm.active, bm.notes,
			bm.created_at, bm.updated_at, e.full_name
		FROM biometric_mappings bm
		LEFT JOIN employees e ON e.id = bm.employee_id
		WHERE ` + where + `
		ORDER BY bm.biometric_id ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query biometric mappings: %w", err)
	}
	defer rows.Close()

	var mappings []biometric.Mapping
	for rows.Next() {
		var mapping biometric.Mapping
		if err := rows.Scan(
			&mapping.ID, &mapping.BiometricID, &mapping.EmployeeID, &mapping.Active,
			&mapping.Notes, &mapping.CreatedAt, &mapping.UpdatedAt, &mapping.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan biometric mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}
	return mappings, rows.Err()
}

// Update implements biometric.MappingRepository.
func (m *mappingRepositoryImpl) Update(ctx context.Context, req biometric.UpdateMappingRequest) (biometric.Mapping, error) {
	q := GetQuerier(ctx, m.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.EmployeeID != nil {
		updates = append(updates, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *req.EmployeeID)
		argIdx++
	}
	if req.Active != nil {
		updates = append(updates, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *req.Active)
		argIdx++
	}
	if req.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *req.Notes)
		argIdx++
	}

	if len(updates) == 0 {
		return biometric.Mapping{}, fmt.Errorf("no updatable fields provided for mapping update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	query := "UPDATE biometric_mappings SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id, biometric_id, employee_id, active, notes, created_at, updated_at", argIdx)

	var mapping biometric.Mapping
	err := q.QueryRow(ctx, query, args...).Scan(
		&mapping.ID, &mapping.BiometricID, &mapping.EmployeeID, &mapping.Active,
		&mapping.Notes, &mapping.CreatedAt, &mapping.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return biometric.Mapping{}, biometric.ErrMappingNotFound
		}
		return biometric.Mapping{}, fmt.Errorf("failed to update biometric mapping: %w", err)
	}

	return mapping, nil
}

// Delete implements biometric.MappingRepository.
func (m *mappingRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, m.db)
	query := `
		DELETE FROM biometric_mappings
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return biometric.ErrMappingNotFound
	}
	return nil
}
