package biometric

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/biometric"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

// timestampLayouts lists the punch timestamp formats the device exports
// have been seen to produce.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type biometricServiceImpl struct {
	mappingRepo       biometric.MappingRepository
	punchRepo         attendance.PunchRepository
	employeeRepo      employee.EmployeeRepository
	attendanceService attendance.AttendanceService
}

func NewBiometricService(
	mappingRepo biometric.MappingRepository,
	punchRepo attendance.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
) biometric.BiometricService {
	return &biometricServiceImpl{
		mappingRepo:       mappingRepo,
		punchRepo:         punchRepo,
		employeeRepo:      employeeRepo,
		attendanceService: attendanceService,
	}
}

// CreateMapping implements biometric.BiometricService.
func (s *biometricServiceImpl) CreateMapping(ctx context.Context, req biometric.CreateMappingRequest) (biometric.MappingResponse, error) {
	if err := req.Validate(); err != nil {
		return biometric.MappingResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return biometric.MappingResponse{}, err
	}

	created, err := s.mappingRepo.Create(ctx, biometric.Mapping{
		BiometricID: req.BiometricID,
		EmployeeID:  req.EmployeeID,
		Active:      req.Active,
		Notes:       req.Notes,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return biometric.MappingResponse{}, biometric.ErrBiometricIDMapped
		}
		return biometric.MappingResponse{}, fmt.Errorf("failed to create biometric mapping: %w", err)
	}

	return mapMappingToResponse(created), nil
}

// ListMappings implements biometric.BiometricService.
func (s *biometricServiceImpl) ListMappings(ctx context.Context, filter biometric.MappingFilter) ([]biometric.MappingResponse, error) {
	mappings, err := s.mappingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list biometric mappings: %w", err)
	}

	responses := make([]biometric.MappingResponse, 0, len(mappings))
	for _, mapping := range mappings {
		responses = append(responses, mapMappingToResponse(mapping))
	}
	return responses, nil
}

// UpdateMapping implements biometric.BiometricService.
func (s *biometricServiceImpl) UpdateMapping(ctx context.Context, req biometric.UpdateMappingRequest) (biometric.MappingResponse, error) {
	if err := req.Validate(); err != nil {
		return biometric.MappingResponse{}, err
	}

	if req.EmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return biometric.MappingResponse{}, err
		}
	}

	updated, err := s.mappingRepo.Update(ctx, req)
	if err != nil {
		return biometric.MappingResponse{}, err
	}
	return mapMappingToResponse(updated), nil
}

// DeleteMapping implements biometric.BiometricService.
func (s *biometricServiceImpl) DeleteMapping(ctx context.Context, id string) error {
	return s.mappingRepo.Delete(ctx, id)
}

// ImportBatch implements biometric.BiometricService. The fold never
// aborts on a bad row: unmappable or malformed rows land in the error
// list and the rest of the batch proceeds.
func (s *biometricServiceImpl) ImportBatch(ctx context.Context, req biometric.ImportRequest) (biometric.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return biometric.ImportResult{}, err
	}

	result := biometric.ImportResult{
		BatchID: uuid.NewString(),
		Errors:  []biometric.RowError{},
	}

	rows, parseErrors, err := parseRows(req.Filename, req.File)
	if err != nil {
		return biometric.ImportResult{}, err
	}
	result.Errors = append(result.Errors, parseErrors...)
	result.Failed += len(parseErrors)

	if len(rows) == 0 && len(parseErrors) == 0 {
		return biometric.ImportResult{}, biometric.ErrEmptyBatch
	}

	// Mappings resolve once per biometric id, not once per row.
	mappingCache := make(map[string]*biometric.Mapping)
	type dirtyDay struct {
		employeeID string
		date       string
	}
	dirty := make(map[dirtyDay]time.Time)

	for _, row := range rows {
		mapping, cached := mappingCache[row.BiometricID]
		if !cached {
			found, err := s.mappingRepo.GetByBiometricID(ctx, row.BiometricID)
			switch {
			case errors.Is(err, biometric.ErrMappingNotFound):
				mappingCache[row.BiometricID] = nil
			case err != nil:
				return biometric.ImportResult{}, err
			default:
				mappingCache[row.BiometricID] = &found
			}
			mapping = mappingCache[row.BiometricID]
		}

		if mapping == nil {
			result.Failed++
			result.Errors = append(result.Errors, biometric.RowError{
				Line:        row.Line,
				BiometricID: row.BiometricID,
				Timestamp:   row.PunchedAt.Format(time.RFC3339),
				Reason:      "no mapping for biometric id",
			})
			continue
		}
		if !mapping.Active {
			result.Failed++
			result.Errors = append(result.Errors, biometric.RowError{
				Line:        row.Line,
				BiometricID: row.BiometricID,
				Timestamp:   row.PunchedAt.Format(time.RFC3339),
				Reason:      "mapping is inactive",
			})
			continue
		}

		exists, err := s.punchRepo.Exists(ctx, mapping.EmployeeID, row.PunchedAt)
		if err != nil {
			return biometric.ImportResult{}, err
		}

		switch {
		case exists && !req.ForceReimport:
			result.Skipped++
			continue
		case exists:
			err = s.punchRepo.UpdateSource(ctx, mapping.EmployeeID, row.PunchedAt, attendance.PunchSourceBiometric, nil)
			if err != nil {
				return biometric.ImportResult{}, err
			}
			result.Updated++
		default:
			_, err = s.punchRepo.Create(ctx, attendance.AttendancePunch{
				EmployeeID: mapping.EmployeeID,
				PunchedAt:  row.PunchedAt,
				Source:     attendance.PunchSourceBiometric,
			})
			if err != nil {
				return biometric.ImportResult{}, err
			}
			result.Imported++
		}

		key := dirtyDay{employeeID: mapping.EmployeeID, date: row.PunchedAt.Format("2006-01-02")}
		dirty[key] = row.PunchedAt
	}

	for key, punchedAt := range dirty {
		if _, err := s.attendanceService.RecompileDay(ctx, key.employeeID, punchedAt); err != nil {
			// Closed days stay as they are; everything else is a real failure.
			if errors.Is(err, attendance.ErrRecordClosed) {
				continue
			}
			return biometric.ImportResult{}, fmt.Errorf("failed to recompile %s for employee %s: %w", key.date, key.employeeID, err)
		}
		result.RecompiledDays++
	}

	return result, nil
}

// parseRows dispatches on the file extension. Unknown extensions are an
// operator mistake, not a row error.
func parseRows(filename string, file io.Reader) ([]biometric.ImportRow, []biometric.RowError, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return parseXLSX(file)
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return parseCSV(file)
	default:
		return nil, nil, biometric.ErrUnsupportedFileType
	}
}

func parseXLSX(file io.Reader) ([]biometric.ImportRow, []biometric.RowError, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, biometric.ErrEmptyBatch
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	var (
		rows      []biometric.ImportRow
		rowErrors []biometric.RowError
	)
	for i, cols := range cells {
		line := i + 1
		if i == 0 && looksLikeHeader(cols) {
			continue
		}
		row, rowErr := parseRow(line, cols)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrors, nil
}

func parseCSV(file io.Reader) ([]biometric.ImportRow, []biometric.RowError, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows      []biometric.ImportRow
		rowErrors []biometric.RowError
		line      int
	)
	for {
		cols, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrors = append(rowErrors, biometric.RowError{
				Line:   line,
				Reason: "malformed csv row",
			})
			continue
		}
		if line == 1 && looksLikeHeader(cols) {
			continue
		}
		row, rowErr := parseRow(line, cols)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrors, nil
}

func looksLikeHeader(cols []string) bool {
	if len(cols) < 2 {
		return false
	}
	_, err := parseTimestamp(cols[1])
	return err != nil
}

func parseRow(line int, cols []string) (biometric.ImportRow, *biometric.RowError) {
	if len(cols) < 2 {
		return biometric.ImportRow{}, &biometric.RowError{
			Line:   line,
			Reason: "expected at least two columns: biometric_id, timestamp",
		}
	}

	biometricID := strings.TrimSpace(cols[0])
	if biometricID == "" {
		return biometric.ImportRow{}, &biometric.RowError{
			Line:   line,
			Reason: "biometric_id is empty",
		}
	}

	punchedAt, err := parseTimestamp(cols[1])
	if err != nil {
		return biometric.ImportRow{}, &biometric.RowError{
			Line:        line,
			BiometricID: biometricID,
			Timestamp:   strings.TrimSpace(cols[1]),
			Reason:      "unparseable timestamp",
		}
	}

	return biometric.ImportRow{
		Line:        line,
		BiometricID: biometricID,
		PunchedAt:   punchedAt,
	}, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

func mapMappingToResponse(mapping biometric.Mapping) biometric.MappingResponse {
	return biometric.MappingResponse{
		ID:           mapping.ID,
		BiometricID:  mapping.BiometricID,
		EmployeeID:   mapping.EmployeeID,
		EmployeeName: mapping.EmployeeName,
		Active:       mapping.Active,
		Notes:        mapping.Notes,
		CreatedAt:    mapping.CreatedAt.Format(time.RFC3339),
	}
}
