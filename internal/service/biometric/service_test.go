package biometric

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/biometric"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/employee"
)

type fakeMappingRepo struct {
	mappings map[string]biometric.Mapping // keyed by biometric id
}

func (f *fakeMappingRepo) Create(ctx context.Context, mapping biometric.Mapping) (biometric.Mapping, error) {
	mapping.ID = "map-" + mapping.BiometricID
	f.mappings[mapping.BiometricID] = mapping
	return mapping, nil
}

func (f *fakeMappingRepo) GetByID(ctx context.Context, id string) (biometric.Mapping, error) {
	for _, m := range f.mappings {
		if m.ID == id {
			return m, nil
		}
	}
	return biometric.Mapping{}, biometric.ErrMappingNotFound
}

func (f *fakeMappingRepo) GetByBiometricID(ctx context.Context, biometricID string) (biometric.Mapping, error) {
	m, ok := f.mappings[biometricID]
	if !ok {
		return biometric.Mapping{}, biometric.ErrMappingNotFound
	}
	return m, nil
}

func (f *fakeMappingRepo) List(ctx context.Context, filter biometric.MappingFilter) ([]biometric.Mapping, error) {
	var out []biometric.Mapping
	for _, m := range f.mappings {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMappingRepo) Update(ctx context.Context, req biometric.UpdateMappingRequest) (biometric.Mapping, error) {
	return biometric.Mapping{}, biometric.ErrMappingNotFound
}

func (f *fakeMappingRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakePunchRepo struct {
	punches []attendance.AttendancePunch
}

func (f *fakePunchRepo) Create(ctx context.Context, punch attendance.AttendancePunch) (attendance.AttendancePunch, error) {
	f.punches = append(f.punches, punch)
	return punch, nil
}

func (f *fakePunchRepo) ListForDay(ctx context.Context, employeeID string, date time.Time) ([]attendance.AttendancePunch, error) {
	return nil, nil
}

func (f *fakePunchRepo) Exists(ctx context.Context, employeeID string, punchedAt time.Time) (bool, error) {
	for _, p := range f.punches {
		if p.EmployeeID == employeeID && p.PunchedAt.Equal(punchedAt) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePunchRepo) UpdateSource(ctx context.Context, employeeID string, punchedAt time.Time, source attendance.PunchSource, notes *string) error {
	for i, p := range f.punches {
		if p.EmployeeID == employeeID && p.PunchedAt.Equal(punchedAt) {
			f.punches[i].Source = source
			f.punches[i].Notes = notes
		}
	}
	return nil
}

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id == "emp-1" || id == "emp-2" {
		return employee.Employee{ID: id, Active: true}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

// recompileRecorder only tracks which employee-days the import touched.
type recompileRecorder struct {
	attendance.AttendanceService
	recompiled map[string]int
	closedDays map[string]bool
}

func newRecompileRecorder() *recompileRecorder {
	return &recompileRecorder{
		recompiled: make(map[string]int),
		closedDays: make(map[string]bool),
	}
}

func (r *recompileRecorder) RecompileDay(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecordResponse, error) {
	key := employeeID + "|" + date.Format("2006-01-02")
	if r.closedDays[key] {
		return attendance.AttendanceRecordResponse{}, attendance.ErrRecordClosed
	}
	r.recompiled[key]++
	return attendance.AttendanceRecordResponse{}, nil
}

type biometricTestEnv struct {
	svc         biometric.BiometricService
	mappingRepo *fakeMappingRepo
	punchRepo   *fakePunchRepo
	recompiles  *recompileRecorder
}

func newBiometricTestEnv() biometricTestEnv {
	mappingRepo := &fakeMappingRepo{mappings: map[string]biometric.Mapping{
		"1001": {ID: "map-1001", BiometricID: "1001", EmployeeID: "emp-1", Active: true},
		"1002": {ID: "map-1002", BiometricID: "1002", EmployeeID: "emp-2", Active: true},
		"1003": {ID: "map-1003", BiometricID: "1003", EmployeeID: "emp-2", Active: false},
	}}
	punchRepo := &fakePunchRepo{}
	recompiles := newRecompileRecorder()

	svc := NewBiometricService(mappingRepo, punchRepo, fakeEmployeeRepo{}, recompiles)
	return biometricTestEnv{
		svc:         svc,
		mappingRepo: mappingRepo,
		punchRepo:   punchRepo,
		recompiles:  recompiles,
	}
}

func importCSV(t *testing.T, env biometricTestEnv, csvBody string, force bool) biometric.ImportResult {
	t.Helper()
	result, err := env.svc.ImportBatch(context.Background(), biometric.ImportRequest{
		Filename:      "punches.csv",
		File:          strings.NewReader(csvBody),
		ForceReimport: force,
	})
	require.NoError(t, err)
	return result
}

func TestImportBatch_CSVWithHeader(t *testing.T) {
	env := newBiometricTestEnv()

	result := importCSV(t, env, strings.Join([]string{
		"biometric_id,timestamp",
		"1001,2026-03-02 08:00:00",
		"1001,2026-03-02 17:00:00",
		"1002,2026-03-02 08:15",
	}, "\n"), false)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.NotEmpty(t, result.BatchID)
	assert.Len(t, env.punchRepo.punches, 3)
	assert.Equal(t, attendance.PunchSourceBiometric, env.punchRepo.punches[0].Source)

	// Two employees touched on one day each.
	assert.Equal(t, 2, result.RecompiledDays)
	assert.Equal(t, 1, env.recompiles.recompiled["emp-1|2026-03-02"])
	assert.Equal(t, 1, env.recompiles.recompiled["emp-2|2026-03-02"])
}

func TestImportBatch_ReimportSkipsExistingPunches(t *testing.T) {
	env := newBiometricTestEnv()
	body := strings.Join([]string{
		"biometric_id,timestamp",
		"1001,2026-03-02 08:00:00",
		"1001,2026-03-02 17:00:00",
	}, "\n")

	first := importCSV(t, env, body, false)
	assert.Equal(t, 2, first.Imported)

	second := importCSV(t, env, body, false)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 0, second.RecompiledDays, "untouched days are not recompiled")
	assert.Len(t, env.punchRepo.punches, 2)
}

func TestImportBatch_ForceReimportUpdatesSource(t *testing.T) {
	env := newBiometricTestEnv()

	// The punch was entered manually before the export arrived.
	manualNote := "entered by hand"
	env.punchRepo.punches = []attendance.AttendancePunch{{
		EmployeeID: "emp-1",
		PunchedAt:  time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		Source:     attendance.PunchSourceManual,
		Notes:      &manualNote,
	}}

	result := importCSV(t, env, strings.Join([]string{
		"biometric_id,timestamp",
		"1001,2026-03-02 08:00:00",
	}, "\n"), true)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, attendance.PunchSourceBiometric, env.punchRepo.punches[0].Source)
	assert.Equal(t, 1, result.RecompiledDays)
}

func TestImportBatch_CollectsRowErrorsWithoutAborting(t *testing.T) {
	env := newBiometricTestEnv()

	result := importCSV(t, env, strings.Join([]string{
		"biometric_id,timestamp",
		"9999,2026-03-02 08:00:00", // unmapped device id
		"1003,2026-03-02 08:00:00", // inactive mapping
		"1001,not-a-timestamp",     // malformed
		",2026-03-02 08:00:00",     // empty id
		"1001,2026-03-02 08:00:00", // good row
	}, "\n"), false)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 4, result.Failed)
	require.Len(t, result.Errors, 4)

	reasons := make([]string, 0, len(result.Errors))
	for _, rowErr := range result.Errors {
		reasons = append(reasons, rowErr.Reason)
	}
	assert.Contains(t, reasons, "no mapping for biometric id")
	assert.Contains(t, reasons, "mapping is inactive")
	assert.Contains(t, reasons, "unparseable timestamp")
	assert.Contains(t, reasons, "biometric_id is empty")
}

func TestImportBatch_ClosedDaysAreLeftAlone(t *testing.T) {
	env := newBiometricTestEnv()
	env.recompiles.closedDays["emp-1|2026-02-02"] = true

	result := importCSV(t, env, strings.Join([]string{
		"biometric_id,timestamp",
		"1001,2026-02-02 08:00:00",
	}, "\n"), false)

	assert.Equal(t, 1, result.Imported, "the punch is stored even when the day stays closed")
	assert.Equal(t, 0, result.RecompiledDays)
}

func TestImportBatch_UnsupportedExtension(t *testing.T) {
	env := newBiometricTestEnv()

	_, err := env.svc.ImportBatch(context.Background(), biometric.ImportRequest{
		Filename: "punches.pdf",
		File:     strings.NewReader("whatever"),
	})
	assert.ErrorIs(t, err, biometric.ErrUnsupportedFileType)
}

func TestImportBatch_EmptyFile(t *testing.T) {
	env := newBiometricTestEnv()

	_, err := env.svc.ImportBatch(context.Background(), biometric.ImportRequest{
		Filename: "punches.csv",
		File:     strings.NewReader(""),
	})
	assert.ErrorIs(t, err, biometric.ErrEmptyBatch)
}

func TestParseTimestamp_AcceptedLayouts(t *testing.T) {
	for _, raw := range []string{
		"2026-03-02T08:00:00Z",
		"2026-03-02 08:00:00",
		"2026-03-02 08:00",
	} {
		parsed, err := parseTimestamp(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, 8, parsed.Hour())
	}

	_, err := parseTimestamp("02/03/2026 08:00")
	assert.Error(t, err)
}

func TestCreateMapping_UnknownEmployee(t *testing.T) {
	env := newBiometricTestEnv()

	_, err := env.svc.CreateMapping(context.Background(), biometric.CreateMappingRequest{
		BiometricID: "2001",
		EmployeeID:  "emp-404",
		Active:      true,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
