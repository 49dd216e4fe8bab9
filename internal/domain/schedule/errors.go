package schedule

import "errors"

var (
	// Work Schedule Errors
	ErrNoScheduleConfigured   = errors.New("no work schedule configured for this date")
	ErrWorkScheduleNotFound   = errors.New("work schedule not found")
	ErrWorkScheduleNameExists = errors.New("work schedule with this name and effective date already exists")
	ErrScheduleDayMissing     = errors.New("work schedule must define all seven weekdays")

	// Holiday Errors
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already exists for this date")

	// Request Data Errors
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)
