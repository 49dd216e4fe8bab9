package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	// Work Schedule
	CreateWorkSchedule(w http.ResponseWriter, r *http.Request)
	GetWorkSchedule(w http.ResponseWriter, r *http.Request)
	ListWorkSchedules(w http.ResponseWriter, r *http.Request)
	ResolveDay(w http.ResponseWriter, r *http.Request)

	// Holiday
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ==================== WORK SCHEDULE HANDLERS ====================

func (h *scheduleHandlerImpl) CreateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.CreateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work schedule created successfully", result)
}

func (h *scheduleHandlerImpl) GetWorkSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.scheduleService.GetSchedule(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ListWorkSchedules(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListSchedules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ResolveDay(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, schedule.ErrInvalidDateFormat)
		return
	}

	resolved, err := h.scheduleService.ResolveDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule.ResolvedDayResponse{
		ScheduleID:        resolved.ScheduleID,
		ScheduleName:      resolved.ScheduleName,
		Date:              resolved.Date.Format("2006-01-02"),
		IsWorkDay:         resolved.IsWorkDay,
		StartTime:         resolved.StartTime,
		EndTime:           resolved.EndTime,
		EntryGraceMinutes: resolved.EntryGraceMinutes,
		ExitGraceMinutes:  resolved.ExitGraceMinutes,
		IsHoliday:         resolved.IsHoliday,
		HolidayName:       resolved.HolidayName,
	})
}

// ==================== HOLIDAY HANDLERS ====================

func (h *scheduleHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

func (h *scheduleHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	filter := schedule.HolidayFilter{}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		filter.Year = &year
	}

	result, err := h.scheduleService.ListHolidays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}
