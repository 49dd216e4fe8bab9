package schedule

import "time"

// WorkSchedule is a company-wide schedule version. The schedule with the
// greatest EffectiveFrom on or before a target date is authoritative for
// that date. Superseded schedules are immutable and never deleted.
type WorkSchedule struct {
	ID            string
	Name          string
	EffectiveFrom time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Days []ScheduleDay
}

// ScheduleDay is one weekday entry of a work schedule.
type ScheduleDay struct {
	ID                string
	WorkScheduleID    string
	Weekday           int // 1=Monday, ..., 7=Sunday
	IsWorkDay         bool
	StartTime         *string // "HH:MM", nil on rest days
	EndTime           *string // "HH:MM", nil on rest days
	EntryGraceMinutes int
	ExitGraceMinutes  int
}

// DayFor returns the entry matching the weekday of date, if present.
func (s WorkSchedule) DayFor(date time.Time) (ScheduleDay, bool) {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // time.Sunday is 0, stored as 7
	}
	for _, d := range s.Days {
		if d.Weekday == weekday {
			return d, true
		}
	}
	return ScheduleDay{}, false
}

type HolidayKind string

const (
	HolidayKindNational HolidayKind = "national"
	HolidayKindCompany  HolidayKind = "company"
)

var HolidayKindValues = []string{
	string(HolidayKindNational),
	string(HolidayKindCompany),
}

// Holiday marks a calendar date as non-working. Recurring holidays apply
// every year at the same month and day regardless of the stored year.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Kind      HolidayKind
	Recurring bool
	CreatedAt time.Time
}

// Matches reports whether the holiday applies to date.
func (h Holiday) Matches(date time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Year() == date.Year() &&
		h.Date.Month() == date.Month() &&
		h.Date.Day() == date.Day()
}

// ResolvedDay is the Schedule Resolver output for one employee-day.
type ResolvedDay struct {
	ScheduleID        string
	ScheduleName      string
	Date              time.Time
	IsWorkDay         bool
	StartTime         *string
	EndTime           *string
	EntryGraceMinutes int
	ExitGraceMinutes  int
	IsHoliday         bool
	HolidayName       *string
}
