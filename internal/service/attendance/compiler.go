package attendance

import (
	"sort"
	"time"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
)

// CompilerConfig carries the externally configured policy knobs of the
// compiler: the daily sanity cap, the overtime multiplier table and the
// night-shift window.
type CompilerConfig struct {
	DailyCapMinutes      int
	WorkdayMultiplierPct int
	RestDayMultiplierPct int
	HolidayMultiplierPct int
	NightShiftStartHour  int
	NightShiftEndHour    int
}

// CompileInput is everything the compiler needs for one employee-day.
// Existing, when present, contributes the override and any resolved
// overtime decision that must survive recompilation.
type CompileInput struct {
	EmployeeID string
	Date       time.Time
	Day        schedule.ResolvedDay
	Punches    []attendance.AttendancePunch
	Existing   *attendance.AttendanceRecord
}

// Compile derives the attendance record for one employee-day. It is a
// pure function: re-running it with the same input yields the same
// record, and it replaces the record wholesale instead of patching
// fields. Classification precedence is override > holiday > schedule.
func Compile(cfg CompilerConfig, in CompileInput) (attendance.AttendanceRecord, error) {
	if in.Existing != nil && in.Existing.Status == attendance.RecordStatusClosed {
		return attendance.AttendanceRecord{}, attendance.ErrRecordClosed
	}

	punches := make([]attendance.AttendancePunch, len(in.Punches))
	copy(punches, in.Punches)
	sort.Slice(punches, func(i, j int) bool {
		return punches[i].PunchedAt.Before(punches[j].PunchedAt)
	})

	record := attendance.AttendanceRecord{
		EmployeeID: in.EmployeeID,
		Date:       truncateToDay(in.Date),
		IsHoliday:  in.Day.IsHoliday,
		Punches:    punches,
	}
	if in.Existing != nil {
		record.ID = in.Existing.ID
		record.Revision = in.Existing.Revision
		record.OverrideDayType = in.Existing.OverrideDayType
		record.OverrideNotes = in.Existing.OverrideNotes
		record.DocumentRef = in.Existing.DocumentRef
		record.OvertimePostedMinutes = in.Existing.OvertimePostedMinutes
	}

	record.DayType = classifyDay(record.OverrideDayType, in.Day, len(punches))

	incomplete := false
	if record.DayType.CountsWorkedMinutes() {
		record.ScheduledMinutes = scheduledMinutes(record.DayType, in.Day)

		paired, odd := pairPunches(punches)
		effective := 0
		for _, iv := range paired {
			effective += int(iv.out.Sub(iv.in).Minutes())
		}
		if odd {
			incomplete = true
		}
		if effective > cfg.DailyCapMinutes {
			// Bad data guard: clip and flag rather than trust the sum.
			effective = cfg.DailyCapMinutes
			incomplete = true
		}
		record.EffectiveMinutes = effective
		record.LateMinutes = lateMinutes(in.Day, punches)
		record.IsNightShift = nightShift(cfg, in.Day, paired)

		if record.EffectiveMinutes > record.ScheduledMinutes {
			record.OvertimeRawMinutes = record.EffectiveMinutes - record.ScheduledMinutes
		}
	}
	record.OvertimeMultiplierPct = multiplierFor(cfg, record.DayType, record.IsHoliday)

	applyOvertimeResolution(&record, in.Existing)

	// Zero punches on a scheduled work day is never COMPLETE, even when
	// an override forced the day type to WORKED.
	switch {
	case incomplete:
		record.Status = attendance.RecordStatusIncomplete
	case record.DayType == attendance.DayTypeWorked && len(punches) == 0:
		record.Status = attendance.RecordStatusIncomplete
	case record.DayType == attendance.DayTypeAbsent:
		record.Status = attendance.RecordStatusIncomplete
	case record.OvertimeStatus == attendance.OvertimePending:
		record.Status = attendance.RecordStatusPendingOvertime
	default:
		record.Status = attendance.RecordStatusComplete
	}

	return record, nil
}

// classifyDay is the explicit day-type precedence function:
// override > holiday > schedule.
func classifyDay(override *attendance.DayType, day schedule.ResolvedDay, punchCount int) attendance.DayType {
	if override != nil {
		return *override
	}
	if day.IsHoliday {
		return attendance.DayTypeHoliday
	}
	if !day.IsWorkDay {
		return attendance.DayTypeRest
	}
	if punchCount > 0 {
		return attendance.DayTypeWorked
	}
	return attendance.DayTypeAbsent
}

// scheduledMinutes is zero for everything except a WORKED day on a
// work-flagged schedule entry: worked holidays and rest work carry no
// schedule, so all their effective minutes become overtime.
func scheduledMinutes(dayType attendance.DayType, day schedule.ResolvedDay) int {
	if dayType != attendance.DayTypeWorked || !day.IsWorkDay {
		return 0
	}
	start, okStart := parseTimeOfDay(day.StartTime)
	end, okEnd := parseTimeOfDay(day.EndTime)
	if !okStart || !okEnd {
		return 0
	}
	if end <= start {
		end += 24 * 60 // schedule crosses midnight
	}
	return end - start
}

type interval struct {
	in  time.Time
	out time.Time
}

// pairPunches pairs chronologically ordered punches as alternating
// in/out events. An unmatched trailing punch marks the day odd.
func pairPunches(punches []attendance.AttendancePunch) ([]interval, bool) {
	var paired []interval
	for i := 0; i+1 < len(punches); i += 2 {
		paired = append(paired, interval{
			in:  punches[i].PunchedAt,
			out: punches[i+1].PunchedAt,
		})
	}
	return paired, len(punches)%2 != 0
}

// lateMinutes = max(0, actualStart - scheduledStart - entryGrace).
func lateMinutes(day schedule.ResolvedDay, punches []attendance.AttendancePunch) int {
	if !day.IsWorkDay || len(punches) == 0 {
		return 0
	}
	start, ok := parseTimeOfDay(day.StartTime)
	if !ok {
		return 0
	}
	first := punches[0].PunchedAt
	actual := first.Hour()*60 + first.Minute()
	late := actual - start - day.EntryGraceMinutes
	if late < 0 {
		return 0
	}
	return late
}

// nightShift holds when the schedule itself crosses midnight or any
// paired interval touches the configured night window.
func nightShift(cfg CompilerConfig, day schedule.ResolvedDay, paired []interval) bool {
	if start, ok := parseTimeOfDay(day.StartTime); ok {
		if end, ok := parseTimeOfDay(day.EndTime); ok && end <= start {
			return true
		}
	}
	for _, iv := range paired {
		if intervalTouchesNight(cfg, iv) {
			return true
		}
	}
	return false
}

func intervalTouchesNight(cfg CompilerConfig, iv interval) bool {
	for t := iv.in; t.Before(iv.out); t = t.Add(time.Hour) {
		h := t.Hour()
		if h >= cfg.NightShiftStartHour || h < cfg.NightShiftEndHour {
			return true
		}
	}
	h := iv.out.Hour()
	return h >= cfg.NightShiftStartHour || h < cfg.NightShiftEndHour
}

func multiplierFor(cfg CompilerConfig, dayType attendance.DayType, isHoliday bool) int {
	switch {
	case isHoliday || dayType == attendance.DayTypeHoliday:
		return cfg.HolidayMultiplierPct
	case dayType == attendance.DayTypeRest:
		return cfg.RestDayMultiplierPct
	default:
		return cfg.WorkdayMultiplierPct
	}
}

// applyOvertimeResolution carries an already approved/rejected decision
// across recompilation as long as the raw minutes did not move; any
// change in raw minutes reopens the question.
func applyOvertimeResolution(record *attendance.AttendanceRecord, existing *attendance.AttendanceRecord) {
	if existing != nil &&
		existing.OvertimeStatus != attendance.OvertimeNone &&
		existing.OvertimeStatus != attendance.OvertimePending &&
		existing.OvertimeRawMinutes == record.OvertimeRawMinutes {
		record.OvertimeStatus = existing.OvertimeStatus
		record.OvertimeEffectiveMinutes = existing.OvertimeEffectiveMinutes
		return
	}
	if record.OvertimeRawMinutes > 0 {
		record.OvertimeStatus = attendance.OvertimePending
		record.OvertimeEffectiveMinutes = 0
		return
	}
	record.OvertimeStatus = attendance.OvertimeNone
	record.OvertimeEffectiveMinutes = 0
}

func parseTimeOfDay(s *string) (int, bool) {
	if s == nil || len(*s) != 5 {
		return 0, false
	}
	t, err := time.Parse("15:04", *s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
