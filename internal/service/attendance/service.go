package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/employee"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
)

type attendanceServiceImpl struct {
	cfg             CompilerConfig
	txManager       database.TxManager
	punchRepo       attendance.PunchRepository
	recordRepo      attendance.RecordRepository
	employeeRepo    employee.EmployeeRepository
	scheduleService schedule.ScheduleService
	ledgerService   ledger.Service
}

func NewAttendanceService(
	cfg CompilerConfig,
	txManager database.TxManager,
	punchRepo attendance.PunchRepository,
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleService schedule.ScheduleService,
	ledgerService ledger.Service,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		cfg:             cfg,
		txManager:       txManager,
		punchRepo:       punchRepo,
		recordRepo:      recordRepo,
		employeeRepo:    employeeRepo,
		scheduleService: scheduleService,
		ledgerService:   ledgerService,
	}
}

// GetDay implements attendance.AttendanceService. A day nobody compiled
// yet is compiled on first read.
func (s *attendanceServiceImpl) GetDay(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecordResponse, error) {
	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return s.RecompileDay(ctx, employeeID, date)
		}
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// ListRecords implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	response := attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
	for _, record := range records {
		response.Records = append(response.Records, mapRecordToResponse(record))
	}
	return response, nil
}

// AddManualPunch implements attendance.AttendanceService.
func (s *attendanceServiceImpl) AddManualPunch(ctx context.Context, req attendance.AddPunchRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	punchedAt, _ := time.Parse(time.RFC3339, req.PunchedAt)

	exists, err := s.punchRepo.Exists(ctx, req.EmployeeID, punchedAt)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	if exists {
		return attendance.AttendanceRecordResponse{}, attendance.ErrDuplicatePunch
	}

	var record attendance.AttendanceRecord
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		notes := req.Notes
		_, err := s.punchRepo.Create(ctx, attendance.AttendancePunch{
			EmployeeID: req.EmployeeID,
			PunchedAt:  punchedAt,
			Source:     attendance.PunchSourceManual,
			Notes:      &notes,
		})
		if err != nil {
			return err
		}

		record, err = s.compileAndStore(ctx, req.EmployeeID, punchedAt)
		return err
	})
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// RecompileDay implements attendance.AttendanceService.
func (s *attendanceServiceImpl) RecompileDay(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecordResponse, error) {
	record, err := s.compileAndStore(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// RecalculateWeek implements attendance.AttendanceService. Closed days
// are carried through untouched.
func (s *attendanceServiceImpl) RecalculateWeek(ctx context.Context, req attendance.RecalculateWeekRequest) ([]attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	anchor, _ := time.Parse("2006-01-02", req.WeekStart)
	weekday := int(anchor.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := anchor.AddDate(0, 0, 1-weekday)

	responses := make([]attendance.AttendanceRecordResponse, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		record, err := s.compileAndStore(ctx, req.EmployeeID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordClosed) {
				existing, getErr := s.recordRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
				if getErr != nil {
					return nil, getErr
				}
				responses = append(responses, mapRecordToResponse(existing))
				continue
			}
			return nil, err
		}
		responses = append(responses, mapRecordToResponse(record))
	}
	return responses, nil
}

// OverrideDay implements attendance.AttendanceService.
func (s *attendanceServiceImpl) OverrideDay(ctx context.Context, req attendance.OverrideRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	var record attendance.AttendanceRecord
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.loadOrCompile(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		if err := existing.ApplyOverride(attendance.DayType(req.DayType), req.Notes, req.DocumentRef); err != nil {
			return err
		}

		record, err = s.recompileExisting(ctx, &existing, date)
		return err
	})
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// RevertOverride implements attendance.AttendanceService.
func (s *attendanceServiceImpl) RevertOverride(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecordResponse, error) {
	var record attendance.AttendanceRecord
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return err
		}

		if err := existing.RevertOverride(); err != nil {
			return err
		}

		record, err = s.recompileExisting(ctx, &existing, date)
		return err
	})
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// ApproveOvertime implements attendance.AttendanceService. The record
// update and the hour bank accrual commit or roll back together.
func (s *attendanceServiceImpl) ApproveOvertime(ctx context.Context, req attendance.ApproveOvertimeRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	var record attendance.AttendanceRecord
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		if err := existing.ApproveOvertime(req.AdjustedMinutes); err != nil {
			return err
		}

		// An earlier approval may already have credited minutes that a
		// recompilation reopened; only the difference moves now.
		delta := existing.CreditedOvertimeMinutes() - existing.OvertimePostedMinutes
		existing.OvertimePostedMinutes = existing.CreditedOvertimeMinutes()

		record, err = s.recordRepo.Upsert(ctx, existing, existing.Revision)
		if err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		return s.postOvertimeDelta(ctx, req.EmployeeID, req.Date, delta, req.Notes)
	})
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// RejectOvertime implements attendance.AttendanceService.
func (s *attendanceServiceImpl) RejectOvertime(ctx context.Context, req attendance.RejectOvertimeRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	var record attendance.AttendanceRecord
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		if err := existing.RejectOvertime(); err != nil {
			return err
		}

		clawback := existing.OvertimePostedMinutes
		existing.OvertimePostedMinutes = 0

		notes := "overtime rejected: " + req.Notes
		if existing.OverrideNotes != nil {
			notes = *existing.OverrideNotes + "\n" + notes
		}
		existing.OverrideNotes = &notes

		record, err = s.recordRepo.Upsert(ctx, existing, existing.Revision)
		if err != nil {
			return err
		}
		if clawback == 0 {
			return nil
		}

		// Minutes credited by an approval that was later reopened and
		// now rejected come back out of the bank.
		return s.postOvertimeDelta(ctx, req.EmployeeID, req.Date, -clawback, nil)
	})
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// PatchRecord implements attendance.AttendanceService. This is the only
// write that touches a CLOSED record; every patch appends its
// justification to the notes trail.
func (s *attendanceServiceImpl) PatchRecord(ctx context.Context, req attendance.PatchRecordRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	var record attendance.AttendanceRecord
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		if req.DayType != nil {
			existing.DayType = attendance.DayType(*req.DayType)
		}
		if req.ScheduledMinutes != nil {
			existing.ScheduledMinutes = *req.ScheduledMinutes
		}
		if req.EffectiveMinutes != nil {
			existing.EffectiveMinutes = *req.EffectiveMinutes
		}
		if req.LateMinutes != nil {
			existing.LateMinutes = *req.LateMinutes
		}

		notes := "patch: " + req.Notes
		if existing.OverrideNotes != nil {
			notes = *existing.OverrideNotes + "\n" + notes
		}
		existing.OverrideNotes = &notes

		record, err = s.recordRepo.Upsert(ctx, existing, existing.Revision)
		return err
	})
	if err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// postOvertimeDelta settles approved overtime against the hour bank. A
// positive delta accrues; a negative one reverses minutes credited by an
// earlier approval that no longer stand.
func (s *attendanceServiceImpl) postOvertimeDelta(ctx context.Context, employeeID, date string, delta int, reqNotes *string) error {
	txType := ledger.TxOvertimeAccrual
	notes := fmt.Sprintf("overtime approved for %s", date)
	if delta < 0 {
		txType = ledger.TxManualAdjustment
		notes = fmt.Sprintf("overtime correction for %s", date)
	}
	if reqNotes != nil && *reqNotes != "" {
		notes = *reqNotes
	}

	_, err := s.ledgerService.PostRaw(ctx, ledger.Transaction{
		EmployeeID: employeeID,
		Kind:       ledger.KindHourBank,
		Type:       txType,
		Delta:      ledger.MinutesDelta(delta),
		Notes:      &notes,
		CreatedBy:  actorUserID(ctx),
	})
	return err
}

// compileAndStore runs the compiler for one employee-day and persists
// the result under the existing record's revision.
func (s *attendanceServiceImpl) compileAndStore(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	var existingPtr *attendance.AttendanceRecord
	if err == nil {
		existingPtr = &existing
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.AttendanceRecord{}, err
	}
	return s.compileWith(ctx, employeeID, date, existingPtr)
}

// recompileExisting recompiles around an already loaded (and mutated)
// record so applied overrides flow into the stored result.
func (s *attendanceServiceImpl) recompileExisting(ctx context.Context, existing *attendance.AttendanceRecord, date time.Time) (attendance.AttendanceRecord, error) {
	return s.compileWith(ctx, existing.EmployeeID, date, existing)
}

func (s *attendanceServiceImpl) compileWith(ctx context.Context, employeeID string, date time.Time, existing *attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	day, err := s.scheduleService.ResolveDay(ctx, date)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	punches, err := s.punchRepo.ListForDay(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	record, err := Compile(s.cfg, CompileInput{
		EmployeeID: employeeID,
		Date:       date,
		Day:        day,
		Punches:    punches,
		Existing:   existing,
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	expectedRevision := -1
	if existing != nil {
		expectedRevision = existing.Revision
	}
	return s.recordRepo.Upsert(ctx, record, expectedRevision)
}

func (s *attendanceServiceImpl) loadOrCompile(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.AttendanceRecord{}, err
	}
	return s.compileWith(ctx, employeeID, date, nil)
}

func actorUserID(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	return &userID
}

func mapRecordToResponse(record attendance.AttendanceRecord) attendance.AttendanceRecordResponse {
	response := attendance.AttendanceRecordResponse{
		ID:                       record.ID,
		EmployeeID:               record.EmployeeID,
		EmployeeName:             record.EmployeeName,
		Date:                     record.Date.Format("2006-01-02"),
		DayType:                  string(record.DayType),
		Status:                   string(record.Status),
		ScheduledMinutes:         record.ScheduledMinutes,
		EffectiveMinutes:         record.EffectiveMinutes,
		LateMinutes:              record.LateMinutes,
		OvertimeRawMinutes:       record.OvertimeRawMinutes,
		OvertimeEffectiveMinutes: record.OvertimeEffectiveMinutes,
		OvertimeMultiplierPct:    record.OvertimeMultiplierPct,
		OvertimeStatus:           string(record.OvertimeStatus),
		IsHoliday:                record.IsHoliday,
		IsNightShift:             record.IsNightShift,
		DocumentRef:              record.DocumentRef,
		OverrideNotes:            record.OverrideNotes,
		Revision:                 record.Revision,
		Punches:                  []attendance.PunchResponse{},
	}
	if record.OverrideDayType != nil {
		overrideType := string(*record.OverrideDayType)
		response.OverrideDayType = &overrideType
	}
	for _, punch := range record.Punches {
		response.Punches = append(response.Punches, attendance.PunchResponse{
			ID:        punch.ID,
			PunchedAt: punch.PunchedAt.Format(time.RFC3339),
			Source:    string(punch.Source),
			Notes:     punch.Notes,
		})
	}
	return response
}
