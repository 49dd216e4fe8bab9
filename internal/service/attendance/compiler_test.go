package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
)

func testCompilerConfig() CompilerConfig {
	return CompilerConfig{
		DailyCapMinutes:      1440,
		WorkdayMultiplierPct: 125,
		RestDayMultiplierPct: 150,
		HolidayMultiplierPct: 200,
		NightShiftStartHour:  22,
		NightShiftEndHour:    6,
	}
}

func strPtr(s string) *string {
	return &s
}

func workDay(date time.Time, start, end string, grace int) schedule.ResolvedDay {
	return schedule.ResolvedDay{
		ScheduleID:        "sched-1",
		ScheduleName:      "Standard",
		Date:              date,
		IsWorkDay:         true,
		StartTime:         strPtr(start),
		EndTime:           strPtr(end),
		EntryGraceMinutes: grace,
	}
}

func restDay(date time.Time) schedule.ResolvedDay {
	return schedule.ResolvedDay{
		ScheduleID:   "sched-1",
		ScheduleName: "Standard",
		Date:         date,
		IsWorkDay:    false,
	}
}

func punchAt(date time.Time, hour, min int) attendance.AttendancePunch {
	return attendance.AttendancePunch{
		EmployeeID: "emp-1",
		PunchedAt:  time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, time.UTC),
		Source:     attendance.PunchSourceBiometric,
	}
}

func TestCompile_RegularWorkDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 8, 3),
			punchAt(date, 17, 10),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeWorked, record.DayType)
	assert.Equal(t, 540, record.ScheduledMinutes)
	assert.Equal(t, 547, record.EffectiveMinutes)
	assert.Equal(t, 0, record.LateMinutes, "arrival within grace is not late")
	assert.Equal(t, 7, record.OvertimeRawMinutes)
	assert.Equal(t, attendance.OvertimePending, record.OvertimeStatus)
	assert.Equal(t, attendance.RecordStatusPendingOvertime, record.Status)
	assert.Equal(t, 125, record.OvertimeMultiplierPct)
	assert.False(t, record.IsNightShift)
}

func TestCompile_LateBeyondGrace(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 8, 20),
			punchAt(date, 17, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 15, record.LateMinutes)
	assert.Equal(t, 520, record.EffectiveMinutes)
	assert.Equal(t, 0, record.OvertimeRawMinutes)
	assert.Equal(t, attendance.OvertimeNone, record.OvertimeStatus)
	assert.Equal(t, attendance.RecordStatusComplete, record.Status)
}

func TestCompile_OddPunchCountIsIncomplete(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 8, 0),
			punchAt(date, 12, 0),
			punchAt(date, 13, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.RecordStatusIncomplete, record.Status)
	assert.Equal(t, 240, record.EffectiveMinutes, "the unmatched trailing punch contributes nothing")
}

func TestCompile_EffectiveMinutesClippedAtCap(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testCompilerConfig()
	cfg.DailyCapMinutes = 600

	record, err := Compile(cfg, CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 6, 0),
			punchAt(date, 23, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 600, record.EffectiveMinutes)
	assert.Equal(t, attendance.RecordStatusIncomplete, record.Status)
}

func TestCompile_UnsortedPunchesArePairedInOrder(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 17, 0),
			punchAt(date, 8, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 540, record.EffectiveMinutes)
	assert.Equal(t, 0, record.LateMinutes)
}

func TestCompile_AbsentWhenNoPunchesOnWorkDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeAbsent, record.DayType)
	assert.Equal(t, attendance.RecordStatusIncomplete, record.Status)
	assert.Equal(t, 0, record.ScheduledMinutes)
	assert.Equal(t, 0, record.EffectiveMinutes)
}

func TestCompile_OverrideToWorkedWithoutPunchesIsIncomplete(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	override := attendance.DayTypeWorked
	existing := &attendance.AttendanceRecord{
		ID:              "rec-1",
		EmployeeID:      "emp-1",
		Date:            date,
		OverrideDayType: &override,
		OverrideNotes:   strPtr("device outage, day confirmed worked"),
	}

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Existing:   existing,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeWorked, record.DayType)
	assert.Equal(t, 540, record.ScheduledMinutes)
	assert.Equal(t, 0, record.EffectiveMinutes)
	assert.Equal(t, attendance.RecordStatusIncomplete, record.Status, "a worked day without punches cannot be complete")
}

func TestCompile_RestDayWithoutPunches(t *testing.T) {
	date := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC) // a Saturday

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        restDay(date),
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeRest, record.DayType)
	assert.Equal(t, attendance.RecordStatusComplete, record.Status)
}

func TestCompile_HolidayWorkIsAllOvertime(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	day := workDay(date, "08:00", "17:00", 5)
	day.IsHoliday = true
	day.HolidayName = strPtr("Labour Day")

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        day,
		Punches: []attendance.AttendancePunch{
			punchAt(date, 9, 0),
			punchAt(date, 13, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeHoliday, record.DayType)
	assert.True(t, record.IsHoliday)
	assert.Equal(t, 0, record.ScheduledMinutes, "holidays carry no schedule")
	assert.Equal(t, 240, record.EffectiveMinutes)
	assert.Equal(t, 240, record.OvertimeRawMinutes)
	assert.Equal(t, 200, record.OvertimeMultiplierPct)
	assert.Equal(t, attendance.RecordStatusPendingOvertime, record.Status)
}

func TestCompile_RestDayWorkUsesRestMultiplier(t *testing.T) {
	date := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        restDay(date),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 10, 0),
			punchAt(date, 14, 0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeRest, record.DayType)
	assert.Equal(t, 240, record.OvertimeRawMinutes)
	assert.Equal(t, 150, record.OvertimeMultiplierPct)
}

func TestCompile_OverrideWinsOverHolidayAndSchedule(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	day := workDay(date, "08:00", "17:00", 5)
	day.IsHoliday = true

	override := attendance.DayTypeVacation
	existing := &attendance.AttendanceRecord{
		ID:              "rec-1",
		EmployeeID:      "emp-1",
		Date:            date,
		Revision:        3,
		OverrideDayType: &override,
		OverrideNotes:   strPtr("approved vacation"),
		DocumentRef:     strPtr("VAC-2026-0042"),
	}

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        day,
		Punches: []attendance.AttendancePunch{
			punchAt(date, 9, 0),
			punchAt(date, 12, 0),
		},
		Existing: existing,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayTypeVacation, record.DayType)
	assert.Equal(t, 0, record.EffectiveMinutes, "vacation days ignore punches")
	assert.Equal(t, 0, record.OvertimeRawMinutes)
	assert.Equal(t, attendance.RecordStatusComplete, record.Status)
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, 3, record.Revision)
	assert.Equal(t, "VAC-2026-0042", *record.DocumentRef)
}

func TestCompile_ApprovedOvertimeSurvivesRecompileWhenRawUnchanged(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	punches := []attendance.AttendancePunch{
		punchAt(date, 8, 0),
		punchAt(date, 18, 0),
	}

	existing := &attendance.AttendanceRecord{
		ID:                       "rec-1",
		EmployeeID:               "emp-1",
		Date:                     date,
		OvertimeRawMinutes:       60,
		OvertimeEffectiveMinutes: 45,
		OvertimeStatus:           attendance.OvertimeApproved,
		Status:                   attendance.RecordStatusComplete,
	}

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches:    punches,
		Existing:   existing,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, record.OvertimeRawMinutes)
	assert.Equal(t, attendance.OvertimeApproved, record.OvertimeStatus)
	assert.Equal(t, 45, record.OvertimeEffectiveMinutes)
	assert.Equal(t, attendance.RecordStatusComplete, record.Status)
}

func TestCompile_ChangedRawMinutesReopenOvertime(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	existing := &attendance.AttendanceRecord{
		ID:                       "rec-1",
		EmployeeID:               "emp-1",
		Date:                     date,
		OvertimeRawMinutes:       60,
		OvertimeEffectiveMinutes: 60,
		OvertimeStatus:           attendance.OvertimeApproved,
		Status:                   attendance.RecordStatusComplete,
	}

	// A new punch pair pushes raw overtime to 90 minutes.
	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 8, 0),
			punchAt(date, 18, 30),
		},
		Existing: existing,
	})
	require.NoError(t, err)

	assert.Equal(t, 90, record.OvertimeRawMinutes)
	assert.Equal(t, attendance.OvertimePending, record.OvertimeStatus)
	assert.Equal(t, 0, record.OvertimeEffectiveMinutes)
	assert.Equal(t, attendance.RecordStatusPendingOvertime, record.Status)
}

func TestCompile_PostedMinutesSurviveReopen(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	existing := &attendance.AttendanceRecord{
		ID:                       "rec-1",
		EmployeeID:               "emp-1",
		Date:                     date,
		OvertimeRawMinutes:       60,
		OvertimeEffectiveMinutes: 60,
		OvertimePostedMinutes:    60,
		OvertimeStatus:           attendance.OvertimeApproved,
		Status:                   attendance.RecordStatusComplete,
	}

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 8, 0),
			punchAt(date, 18, 30),
		},
		Existing: existing,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.OvertimePending, record.OvertimeStatus)
	assert.Equal(t, 0, record.OvertimeEffectiveMinutes)
	assert.Equal(t, 60, record.OvertimePostedMinutes, "minutes already in the bank stay on the books through a reopen")
}

func TestCompile_ClosedRecordIsRejected(t *testing.T) {
	date := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	_, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Existing: &attendance.AttendanceRecord{
			Status: attendance.RecordStatusClosed,
		},
	})
	assert.ErrorIs(t, err, attendance.ErrRecordClosed)
}

func TestCompile_NightShiftCrossingMidnight(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day := workDay(date, "22:00", "06:00", 5)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        day,
		Punches: []attendance.AttendancePunch{
			punchAt(date, 22, 0),
			punchAt(date.AddDate(0, 0, 1), 6, 0),
		},
	})
	require.NoError(t, err)

	assert.True(t, record.IsNightShift)
	assert.Equal(t, 480, record.ScheduledMinutes, "a schedule crossing midnight still spans eight hours")
	assert.Equal(t, 480, record.EffectiveMinutes)
}

func TestCompile_DayIntervalNeverFlagsNightShift(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	record, err := Compile(testCompilerConfig(), CompileInput{
		EmployeeID: "emp-1",
		Date:       date,
		Day:        workDay(date, "08:00", "17:00", 5),
		Punches: []attendance.AttendancePunch{
			punchAt(date, 8, 0),
			punchAt(date, 17, 0),
		},
	})
	require.NoError(t, err)

	assert.False(t, record.IsNightShift)
}
