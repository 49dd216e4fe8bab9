package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func TestApplyOverride_RequiresNotes(t *testing.T) {
	record := AttendanceRecord{Status: RecordStatusComplete}

	err := record.ApplyOverride(DayTypeRest, "", nil)
	assert.ErrorIs(t, err, ErrOverrideNotesRequired)
}

func TestApplyOverride_FormalLeaveRequiresDocumentRef(t *testing.T) {
	record := AttendanceRecord{Status: RecordStatusComplete}

	err := record.ApplyOverride(DayTypeMedicalLeave, "doctor visit", nil)
	assert.ErrorIs(t, err, ErrDocumentRefRequired)

	err = record.ApplyOverride(DayTypeMedicalLeave, "doctor visit", strPtr(""))
	assert.ErrorIs(t, err, ErrDocumentRefRequired)

	err = record.ApplyOverride(DayTypeMedicalLeave, "doctor visit", strPtr("MED-2026-0017"))
	require.NoError(t, err)
	assert.Equal(t, DayTypeMedicalLeave, *record.OverrideDayType)
	assert.Equal(t, "MED-2026-0017", *record.DocumentRef)
}

func TestApplyOverride_InformalTypeNeedsNoDocumentRef(t *testing.T) {
	record := AttendanceRecord{Status: RecordStatusIncomplete}

	err := record.ApplyOverride(DayTypeRest, "plant shutdown", nil)
	require.NoError(t, err)
	assert.Equal(t, DayTypeRest, *record.OverrideDayType)
	assert.Equal(t, "plant shutdown", *record.OverrideNotes)
	assert.Nil(t, record.DocumentRef)
}

func TestApplyOverride_ClosedRecord(t *testing.T) {
	record := AttendanceRecord{Status: RecordStatusClosed}

	err := record.ApplyOverride(DayTypeRest, "too late", nil)
	assert.ErrorIs(t, err, ErrRecordClosed)
}

func TestRevertOverride(t *testing.T) {
	override := DayTypeVacation
	record := AttendanceRecord{
		Status:          RecordStatusComplete,
		OverrideDayType: &override,
		OverrideNotes:   strPtr("approved vacation"),
		DocumentRef:     strPtr("VAC-2026-0042"),
	}

	require.NoError(t, record.RevertOverride())
	assert.Nil(t, record.OverrideDayType)
	assert.Nil(t, record.OverrideNotes)
	assert.Nil(t, record.DocumentRef)

	// Nothing left to revert.
	assert.ErrorIs(t, record.RevertOverride(), ErrNoOverrideToRevert)
}

func TestApproveOvertime_FullCredit(t *testing.T) {
	record := AttendanceRecord{
		Status:             RecordStatusPendingOvertime,
		OvertimeStatus:     OvertimePending,
		OvertimeRawMinutes: 45,
	}

	require.NoError(t, record.ApproveOvertime(nil))
	assert.Equal(t, OvertimeApproved, record.OvertimeStatus)
	assert.Equal(t, 45, record.CreditedOvertimeMinutes())
	assert.Equal(t, RecordStatusComplete, record.Status)
}

func TestApproveOvertime_AdjustedDownward(t *testing.T) {
	record := AttendanceRecord{
		Status:             RecordStatusPendingOvertime,
		OvertimeStatus:     OvertimePending,
		OvertimeRawMinutes: 45,
	}

	require.NoError(t, record.ApproveOvertime(intPtr(30)))
	assert.Equal(t, 30, record.CreditedOvertimeMinutes())
}

func TestApproveOvertime_AdjustmentBounds(t *testing.T) {
	record := AttendanceRecord{
		Status:             RecordStatusPendingOvertime,
		OvertimeStatus:     OvertimePending,
		OvertimeRawMinutes: 45,
	}

	assert.ErrorIs(t, record.ApproveOvertime(intPtr(-1)), ErrInvalidOvertimeAdjustment)
	assert.ErrorIs(t, record.ApproveOvertime(intPtr(46)), ErrInvalidOvertimeAdjustment)
	assert.Equal(t, OvertimePending, record.OvertimeStatus, "a rejected adjustment must not resolve the overtime")
}

func TestApproveOvertime_OnlyOnce(t *testing.T) {
	record := AttendanceRecord{
		Status:             RecordStatusPendingOvertime,
		OvertimeStatus:     OvertimePending,
		OvertimeRawMinutes: 45,
	}

	require.NoError(t, record.ApproveOvertime(nil))
	assert.ErrorIs(t, record.ApproveOvertime(nil), ErrOvertimeAlreadyResolved)
	assert.ErrorIs(t, record.RejectOvertime(), ErrOvertimeAlreadyResolved)
}

func TestRejectOvertime(t *testing.T) {
	record := AttendanceRecord{
		Status:             RecordStatusPendingOvertime,
		OvertimeStatus:     OvertimePending,
		OvertimeRawMinutes: 45,
	}

	require.NoError(t, record.RejectOvertime())
	assert.Equal(t, OvertimeRejected, record.OvertimeStatus)
	assert.Equal(t, 0, record.CreditedOvertimeMinutes())
	assert.Equal(t, RecordStatusComplete, record.Status)
}

func TestDayType_CountsWorkedMinutes(t *testing.T) {
	assert.True(t, DayTypeWorked.CountsWorkedMinutes())
	assert.True(t, DayTypeHoliday.CountsWorkedMinutes())
	assert.True(t, DayTypeRest.CountsWorkedMinutes())
	assert.False(t, DayTypeVacation.CountsWorkedMinutes())
	assert.False(t, DayTypeAbsent.CountsWorkedMinutes())
	assert.False(t, DayTypeSuspension.CountsWorkedMinutes())
}

func TestDayType_RequiresDocumentRef(t *testing.T) {
	assert.True(t, DayTypeVacation.RequiresDocumentRef())
	assert.True(t, DayTypePermit.RequiresDocumentRef())
	assert.True(t, DayTypeCompensatoryRest.RequiresDocumentRef())
	assert.False(t, DayTypeWorked.RequiresDocumentRef())
	assert.False(t, DayTypeRest.RequiresDocumentRef())
	assert.False(t, DayTypeAbsent.RequiresDocumentRef())
}
