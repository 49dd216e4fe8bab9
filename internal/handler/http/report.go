package http

import (
	"net/http"
	"strconv"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/report"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Tardiness(w http.ResponseWriter, r *http.Request)
	Absence(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := report.MonthlyFilter{}
	filter.Year, _ = strconv.Atoi(query.Get("year"))
	filter.Month, _ = strconv.Atoi(query.Get("month"))
	if page := query.Get("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := query.Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.reportService.MonthlySummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func (h *reportHandlerImpl) Tardiness(w http.ResponseWriter, r *http.Request) {
	filter := rangeFilterFromQuery(r)

	result, err := h.reportService.Tardiness(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func (h *reportHandlerImpl) Absence(w http.ResponseWriter, r *http.Request) {
	filter := rangeFilterFromQuery(r)

	result, err := h.reportService.Absences(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func rangeFilterFromQuery(r *http.Request) report.RangeFilter {
	query := r.URL.Query()

	filter := report.RangeFilter{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}
	if page := query.Get("page"); page != "" {
		filter.Page, _ = strconv.Atoi(page)
	}
	if limit := query.Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	return filter
}
