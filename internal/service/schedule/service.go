package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
	"github.com/praxishr/timecontrol-backend-go/internal/repository/postgresql"
)

type scheduleServiceImpl struct {
	db               *database.DB
	workScheduleRepo schedule.WorkScheduleRepository
	holidayRepo      schedule.HolidayRepository
}

func NewScheduleService(
	db *database.DB,
	workScheduleRepo schedule.WorkScheduleRepository,
	holidayRepo schedule.HolidayRepository,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		db:               db,
		workScheduleRepo: workScheduleRepo,
		holidayRepo:      holidayRepo,
	}
}

// CreateSchedule implements schedule.ScheduleService. A new schedule
// version never mutates older ones; it simply wins for dates on or
// after its effective_from.
func (s *scheduleServiceImpl) CreateSchedule(ctx context.Context, req schedule.CreateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)

	ws := schedule.WorkSchedule{
		Name:          req.Name,
		EffectiveFrom: effectiveFrom,
	}
	for _, d := range req.Days {
		ws.Days = append(ws.Days, schedule.ScheduleDay{
			Weekday:           d.Weekday,
			IsWorkDay:         d.IsWorkDay,
			StartTime:         d.StartTime,
			EndTime:           d.EndTime,
			EntryGraceMinutes: d.EntryGraceMinutes,
			ExitGraceMinutes:  d.ExitGraceMinutes,
		})
	}

	var created schedule.WorkSchedule
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		var err error
		created, err = s.workScheduleRepo.Create(txCtx, ws)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return schedule.WorkScheduleResponse{}, schedule.ErrWorkScheduleNameExists
		}
		return schedule.WorkScheduleResponse{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return mapWorkScheduleToResponse(created), nil
}

// GetSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, id string) (schedule.WorkScheduleResponse, error) {
	ws, err := s.workScheduleRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}
	return mapWorkScheduleToResponse(ws), nil
}

// ListSchedules implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListSchedules(ctx context.Context) (schedule.ListWorkSchedulesResponse, error) {
	schedules, total, err := s.workScheduleRepo.List(ctx)
	if err != nil {
		return schedule.ListWorkSchedulesResponse{}, fmt.Errorf("failed to list work schedules: %w", err)
	}

	response := schedule.ListWorkSchedulesResponse{TotalCount: total}
	for _, ws := range schedules {
		response.Schedules = append(response.Schedules, mapWorkScheduleToResponse(ws))
	}
	return response, nil
}

// ResolveDay implements schedule.ScheduleService. The effective
// schedule is the one with the greatest effective_from on or before the
// date; the weekday entry and holiday lookup complete the resolution.
func (s *scheduleServiceImpl) ResolveDay(ctx context.Context, date time.Time) (schedule.ResolvedDay, error) {
	ws, err := s.workScheduleRepo.GetEffectiveForDate(ctx, date)
	if err != nil {
		return schedule.ResolvedDay{}, err
	}

	day, ok := ws.DayFor(date)
	if !ok {
		return schedule.ResolvedDay{}, schedule.ErrScheduleDayMissing
	}

	holiday, err := s.holidayRepo.FindForDate(ctx, date)
	if err != nil {
		return schedule.ResolvedDay{}, fmt.Errorf("failed to look up holiday: %w", err)
	}

	resolved := schedule.ResolvedDay{
		ScheduleID:        ws.ID,
		ScheduleName:      ws.Name,
		Date:              date,
		IsWorkDay:         day.IsWorkDay,
		StartTime:         day.StartTime,
		EndTime:           day.EndTime,
		EntryGraceMinutes: day.EntryGraceMinutes,
		ExitGraceMinutes:  day.ExitGraceMinutes,
	}
	if holiday != nil {
		resolved.IsHoliday = true
		resolved.HolidayName = &holiday.Name
	}
	return resolved, nil
}

// CreateHoliday implements schedule.ScheduleService.
func (s *scheduleServiceImpl) CreateHoliday(ctx context.Context, req schedule.CreateHolidayRequest) (schedule.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	holiday := schedule.Holiday{
		Date:      date,
		Name:      req.Name,
		Kind:      schedule.HolidayKind(req.Kind),
		Recurring: req.Recurring,
	}

	created, err := s.holidayRepo.Create(ctx, holiday)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return schedule.HolidayResponse{}, schedule.ErrHolidayExists
		}
		return schedule.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return mapHolidayToResponse(created), nil
}

// ListHolidays implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListHolidays(ctx context.Context, filter schedule.HolidayFilter) ([]schedule.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]schedule.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

// DeleteHoliday implements schedule.ScheduleService.
func (s *scheduleServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

func mapWorkScheduleToResponse(ws schedule.WorkSchedule) schedule.WorkScheduleResponse {
	response := schedule.WorkScheduleResponse{
		ID:            ws.ID,
		Name:          ws.Name,
		EffectiveFrom: ws.EffectiveFrom.Format("2006-01-02"),
		CreatedAt:     ws.CreatedAt.Format(time.RFC3339),
	}
	for _, d := range ws.Days {
		response.Days = append(response.Days, schedule.ScheduleDayResponse{
			Weekday:           d.Weekday,
			IsWorkDay:         d.IsWorkDay,
			StartTime:         d.StartTime,
			EndTime:           d.EndTime,
			EntryGraceMinutes: d.EntryGraceMinutes,
			ExitGraceMinutes:  d.ExitGraceMinutes,
		})
	}
	return response
}

func mapHolidayToResponse(h schedule.Holiday) schedule.HolidayResponse {
	return schedule.HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		Kind:      string(h.Kind),
		Recurring: h.Recurring,
	}
}
