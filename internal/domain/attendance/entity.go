package attendance

import (
	"fmt"
	"time"
)

type DayType string

const (
	DayTypeWorked           DayType = "WORKED"
	DayTypeRest             DayType = "REST"
	DayTypeHoliday          DayType = "HOLIDAY"
	DayTypeVacation         DayType = "VACATION"
	DayTypeAbsent           DayType = "ABSENT"
	DayTypePermit           DayType = "PERMIT"
	DayTypeMedicalLeave     DayType = "MEDICAL_LEAVE"
	DayTypeTraining         DayType = "TRAINING"
	DayTypeSuspension       DayType = "SUSPENSION"
	DayTypeCompensatoryRest DayType = "COMPENSATORY_REST"
)

var DayTypeValues = []string{
	string(DayTypeWorked),
	string(DayTypeRest),
	string(DayTypeHoliday),
	string(DayTypeVacation),
	string(DayTypeAbsent),
	string(DayTypePermit),
	string(DayTypeMedicalLeave),
	string(DayTypeTraining),
	string(DayTypeSuspension),
	string(DayTypeCompensatoryRest),
}

// documentRefRequired lists the formal-leave day types that cannot be
// applied without a supporting document reference.
var documentRefRequired = map[DayType]bool{
	DayTypeVacation:         true,
	DayTypePermit:           true,
	DayTypeMedicalLeave:     true,
	DayTypeTraining:         true,
	DayTypeSuspension:       true,
	DayTypeCompensatoryRest: true,
}

// RequiresDocumentRef reports whether an override to t needs a document reference.
func (t DayType) RequiresDocumentRef() bool {
	return documentRefRequired[t]
}

// CountsWorkedMinutes reports whether punches still drive the minute
// fields under this day type.
func (t DayType) CountsWorkedMinutes() bool {
	return t == DayTypeWorked || t == DayTypeHoliday || t == DayTypeRest
}

type RecordStatus string

const (
	RecordStatusComplete        RecordStatus = "COMPLETE"
	RecordStatusIncomplete      RecordStatus = "INCOMPLETE"
	RecordStatusPendingOvertime RecordStatus = "PENDING_OVERTIME"
	RecordStatusClosed          RecordStatus = "CLOSED"
)

type OvertimeStatus string

const (
	OvertimeNone     OvertimeStatus = "NONE"
	OvertimePending  OvertimeStatus = "PENDING"
	OvertimeApproved OvertimeStatus = "APPROVED"
	OvertimeRejected OvertimeStatus = "REJECTED"
)

type PunchSource string

const (
	PunchSourceBiometric PunchSource = "biometric"
	PunchSourceManual    PunchSource = "manual"
	PunchSourceSystem    PunchSource = "system"
)

var PunchSourceValues = []string{
	string(PunchSourceBiometric),
	string(PunchSourceManual),
	string(PunchSourceSystem),
}

// AttendancePunch is an immutable timestamped clock event. The owning
// day is the local calendar date of PunchedAt.
type AttendancePunch struct {
	ID         string
	EmployeeID string
	PunchedAt  time.Time
	Source     PunchSource
	Notes      *string
	CreatedAt  time.Time
}

// AttendanceRecord is the single owning aggregate for one employee-day.
// It is only mutated through the named operations below; the compiler
// replaces it wholesale on recompilation. Revision detects lost updates
// between concurrent actors.
type AttendanceRecord struct {
	ID                       string
	EmployeeID               string
	Date                     time.Time
	DayType                  DayType
	Status                   RecordStatus
	ScheduledMinutes         int
	EffectiveMinutes         int
	LateMinutes              int
	OvertimeRawMinutes       int
	OvertimeEffectiveMinutes int
	OvertimeMultiplierPct    int
	OvertimeStatus           OvertimeStatus
	IsHoliday                bool
	IsNightShift             bool
	DocumentRef              *string
	OverrideDayType          *DayType
	OverrideNotes            *string
	Revision                 int
	CreatedAt                time.Time
	UpdatedAt                time.Time

	// OvertimePostedMinutes is what earlier approvals already moved into
	// the hour bank. It survives recompilation even when the overtime
	// question reopens, so re-approval can settle the difference instead
	// of crediting the same minutes twice.
	OvertimePostedMinutes int

	Punches []AttendancePunch

	// DTO
	EmployeeName *string
}

// ApplyOverride replaces the computed classification with a manual one.
// Minutes are re-derived by the caller through recompilation.
func (r *AttendanceRecord) ApplyOverride(dayType DayType, notes string, documentRef *string) error {
	if r.Status == RecordStatusClosed {
		return ErrRecordClosed
	}
	if notes == "" {
		return ErrOverrideNotesRequired
	}
	if dayType.RequiresDocumentRef() && (documentRef == nil || *documentRef == "") {
		return ErrDocumentRefRequired
	}

	r.OverrideDayType = &dayType
	r.OverrideNotes = &notes
	r.DocumentRef = documentRef
	return nil
}

// RevertOverride restores the mechanically computed classification.
func (r *AttendanceRecord) RevertOverride() error {
	if r.Status == RecordStatusClosed {
		return ErrRecordClosed
	}
	if r.OverrideDayType == nil {
		return ErrNoOverrideToRevert
	}
	r.OverrideDayType = nil
	r.OverrideNotes = nil
	r.DocumentRef = nil
	return nil
}

// ApproveOvertime resolves pending overtime. adjustedMinutes, when set,
// caps the credited minutes below the raw computation.
func (r *AttendanceRecord) ApproveOvertime(adjustedMinutes *int) error {
	if r.Status == RecordStatusClosed {
		return ErrRecordClosed
	}
	if r.OvertimeStatus != OvertimePending {
		return ErrOvertimeAlreadyResolved
	}

	credited := r.OvertimeRawMinutes
	if adjustedMinutes != nil {
		if *adjustedMinutes < 0 || *adjustedMinutes > r.OvertimeRawMinutes {
			return fmt.Errorf("%w: adjusted minutes must be between 0 and %d",
				ErrInvalidOvertimeAdjustment, r.OvertimeRawMinutes)
		}
		credited = *adjustedMinutes
	}

	r.OvertimeStatus = OvertimeApproved
	r.OvertimeEffectiveMinutes = credited
	if r.Status == RecordStatusPendingOvertime {
		r.Status = RecordStatusComplete
	}
	return nil
}

// RejectOvertime resolves pending overtime without crediting it.
func (r *AttendanceRecord) RejectOvertime() error {
	if r.Status == RecordStatusClosed {
		return ErrRecordClosed
	}
	if r.OvertimeStatus != OvertimePending {
		return ErrOvertimeAlreadyResolved
	}
	r.OvertimeStatus = OvertimeRejected
	r.OvertimeEffectiveMinutes = 0
	if r.Status == RecordStatusPendingOvertime {
		r.Status = RecordStatusComplete
	}
	return nil
}

// CreditedOvertimeMinutes is the amount posted to the hour bank on approval.
func (r *AttendanceRecord) CreditedOvertimeMinutes() int {
	return r.OvertimeEffectiveMinutes
}
