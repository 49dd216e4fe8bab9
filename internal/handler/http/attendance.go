package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	AddPunch(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
	RevertOverride(w http.ResponseWriter, r *http.Request)
	ApproveOvertime(w http.ResponseWriter, r *http.Request)
	RejectOvertime(w http.ResponseWriter, r *http.Request)
	Patch(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := attendance.RecordFilter{
		EmployeeID: query.Get("employee_id"),
		SortOrder:  query.Get("sort_order"),
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if dayType := query.Get("day_type"); dayType != "" {
		filter.DayType = &dayType
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if page := query.Get("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := query.Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *attendanceHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := pathEmployeeDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) AddPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.AddPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.AddManualPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded successfully", result)
}

func (h *attendanceHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecalculateWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RecalculateWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week recalculated successfully", result)
}

func (h *attendanceHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := pathEmployeeDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.EmployeeID = employeeID
	req.Date = date.Format("2006-01-02")

	result, err := h.attendanceService.OverrideDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day overridden successfully", result)
}

func (h *attendanceHandlerImpl) RevertOverride(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := pathEmployeeDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RevertOverride(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override reverted successfully", result)
}

func (h *attendanceHandlerImpl) ApproveOvertime(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := pathEmployeeDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ApproveOvertimeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	req.EmployeeID = employeeID
	req.Date = date.Format("2006-01-02")

	result, err := h.attendanceService.ApproveOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime approved successfully", result)
}

func (h *attendanceHandlerImpl) RejectOvertime(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := pathEmployeeDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.RejectOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.EmployeeID = employeeID
	req.Date = date.Format("2006-01-02")

	result, err := h.attendanceService.RejectOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime rejected successfully", result)
}

func (h *attendanceHandlerImpl) Patch(w http.ResponseWriter, r *http.Request) {
	employeeID, date, err := pathEmployeeDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.PatchRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.EmployeeID = employeeID
	req.Date = date.Format("2006-01-02")

	result, err := h.attendanceService.PatchRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record patched successfully", result)
}

func pathEmployeeDate(r *http.Request) (string, time.Time, error) {
	employeeID := chi.URLParam(r, "employeeID")
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		return "", time.Time{}, schedule.ErrInvalidDateFormat
	}
	return employeeID, date, nil
}
