package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/employee"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
)

// TimecontrolJobs holds the scheduled attendance and ledger maintenance
// jobs.
type TimecontrolJobs struct {
	employeeRepo      employee.EmployeeRepository
	ledgerRepo        ledger.Repository
	ledgerService     ledger.Service
	attendanceService attendance.AttendanceService
	accrualPerPeriod  decimal.Decimal
}

// NewTimecontrolJobs creates the job set. accrualDaysPerPeriod is the
// configured vacation accrual, e.g. "1.25".
func NewTimecontrolJobs(
	employeeRepo employee.EmployeeRepository,
	ledgerRepo ledger.Repository,
	ledgerService ledger.Service,
	attendanceService attendance.AttendanceService,
	accrualDaysPerPeriod string,
) (*TimecontrolJobs, error) {
	accrual, err := decimal.NewFromString(accrualDaysPerPeriod)
	if err != nil {
		return nil, fmt.Errorf("invalid vacation accrual %q: %w", accrualDaysPerPeriod, err)
	}

	return &TimecontrolJobs{
		employeeRepo:      employeeRepo,
		ledgerRepo:        ledgerRepo,
		ledgerService:     ledgerService,
		attendanceService: attendanceService,
		accrualPerPeriod:  accrual,
	}, nil
}

// RegisterJobs registers all jobs with the scheduler
func (j *TimecontrolJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("compile-previous-day", 1*time.Hour, j.CompilePreviousDay)
	scheduler.AddJob("vacation-accrual", 1*time.Hour, j.PostVacationAccruals)
}

// CompilePreviousDay recompiles yesterday for every active employee so
// that days without any punch materialize as ABSENT records.
func (j *TimecontrolJobs) CompilePreviousDay(ctx context.Context) error {
	// Only run during the midnight hour
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	compiled := 0
	for _, emp := range employees {
		_, err := j.attendanceService.RecompileDay(ctx, emp.ID, yesterday)
		if err != nil {
			// A closed record or a day before the first schedule is
			// expected; anything else is worth surfacing.
			if errors.Is(err, attendance.ErrRecordClosed) || errors.Is(err, schedule.ErrNoScheduleConfigured) {
				continue
			}
			slog.Error("Failed to compile previous day",
				"employee_id", emp.ID,
				"date", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}
		compiled++
	}

	if compiled > 0 {
		slog.Info("Previous day compiled",
			"date", yesterday.Format("2006-01-02"),
			"employee_count", compiled)
	}
	return nil
}

// PostVacationAccruals posts the monthly vacation accrual for every
// active employee. The period start on each accrual makes the job
// idempotent: an employee already credited for the period is skipped.
func (j *TimecontrolJobs) PostVacationAccruals(ctx context.Context) error {
	now := time.Now().UTC()

	// Only run during the midnight hour of the first of the month
	if now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	posted := 0
	for _, emp := range employees {
		credited, err := j.accruedForPeriod(ctx, emp.ID, periodStart)
		if err != nil {
			slog.Error("Failed to check vacation accrual",
				"employee_id", emp.ID, "error", err)
			continue
		}
		if credited {
			continue
		}

		notes := fmt.Sprintf("monthly vacation accrual for %s", periodStart.Format("2006-01"))
		_, err = j.ledgerService.PostRaw(ctx, ledger.Transaction{
			EmployeeID:  emp.ID,
			Kind:        ledger.KindVacation,
			Type:        ledger.TxVacationAccrual,
			Delta:       j.accrualPerPeriod,
			Notes:       &notes,
			PeriodStart: &periodStart,
		})
		if err != nil {
			slog.Error("Failed to post vacation accrual",
				"employee_id", emp.ID, "error", err)
			continue
		}
		posted++
	}

	if posted > 0 {
		slog.Info("Vacation accruals posted",
			"period", periodStart.Format("2006-01"),
			"employee_count", posted)
	}
	return nil
}

func (j *TimecontrolJobs) accruedForPeriod(ctx context.Context, employeeID string, periodStart time.Time) (bool, error) {
	txs, err := j.ledgerRepo.ListAll(ctx, employeeID, ledger.KindVacation)
	if err != nil {
		return false, err
	}
	for _, tx := range txs {
		if tx.Type == ledger.TxVacationAccrual && tx.PeriodStart != nil && tx.PeriodStart.Equal(periodStart) {
			return true, nil
		}
	}
	return false, nil
}
