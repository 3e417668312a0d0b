package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/empleados-api/internal/domain"
	"github.com/empleados-api/internal/dto"
	"github.com/empleados-api/internal/service"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type EmployeeHandler struct {
	empService service.EmployeeService
	attService service.AttendanceService
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewEmployeeHandler(
	empService service.EmployeeService,
	attService service.AttendanceService,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		empService: empService,
		attService: attService,
		validator:  validator.New(),
		logger:     logger,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toEmployeeResponse(emp, false))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	pageSize := 10

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			pageSize = l
		}
	}

	result, err := h.empService.List(r.Context(), page, pageSize)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeePageResponse(r, result))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeeResponse(emp, true))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeeResponse(emp, false))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	rec, err := h.attService.ClockIn(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toAttendanceResponse(rec))
}

func (h *EmployeeHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	rec, err := h.attService.ClockOut(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toAttendanceResponse(rec))
}

func (h *EmployeeHandler) RecordProduction(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	var req dto.RecordProductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rec, err := h.attService.RecordProduction(r.Context(), id, req.Units)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toProductionResponse(rec))
}

func (h *EmployeeHandler) Payroll(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	result, err := h.attService.ComputePayroll(r.Context(), query.EmployeeID, query.StartDate, query.EndDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := dto.PayrollResponse{
		DaysWorked: result.DaysWorked,
		Records:    make([]dto.AttendanceResponse, len(result.Records)),
		TotalPay:   result.TotalPay,
	}
	for i := range result.Records {
		resp.Records[i] = h.toAttendanceResponse(&result.Records[i])
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) AttendanceCount(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	total, err := h.attService.CountAttendance(r.Context(), query.EmployeeID, query.StartDate, query.EndDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.AttendanceCountResponse{TotalAttendances: total})
}

func (h *EmployeeHandler) WorkedDays(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	days, err := h.attService.ListWorkedDays(r.Context(), query.EmployeeID, query.StartDate, query.EndDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, days)
}

func (h *EmployeeHandler) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	rows, err := h.attService.AttendanceReport(r.Context(), query.EmployeeID, query.StartDate, query.EndDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.AttendanceReportResponse{Total: len(rows), Data: rows})
}

func (h *EmployeeHandler) ProductionReport(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseReportQuery(w, r)
	if !ok {
		return
	}

	rows, err := h.attService.ProductionReport(r.Context(), query.EmployeeID, query.StartDate, query.EndDate)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, rows)
}

func (h *EmployeeHandler) extractID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/employees/")
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(parts[0], 10, 64)
}

// parseReportQuery разбирает и валидирует общие параметры отчётных запросов
func (h *EmployeeHandler) parseReportQuery(w http.ResponseWriter, r *http.Request) (dto.ReportQuery, bool) {
	query := dto.ReportQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			query.EmployeeID = id
		}
	}

	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return query, false
	}

	return query, true
}

func (h *EmployeeHandler) toEmployeeResponse(emp *domain.Employee, includeRelations bool) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastNameP: emp.LastNameP,
		LastNameM: emp.LastNameM,
		Area:      emp.Area,
		Shift:     emp.Shift,
		DailyWage: emp.DailyWage,
		Active:    emp.Active,
		CreatedAt: emp.CreatedAt,
	}

	if includeRelations {
		if len(emp.Attendance) > 0 {
			resp.Attendance = make([]dto.AttendanceResponse, len(emp.Attendance))
			for i := range emp.Attendance {
				resp.Attendance[i] = h.toAttendanceResponse(&emp.Attendance[i])
			}
		}
		if len(emp.Production) > 0 {
			resp.Production = make([]dto.ProductionResponse, len(emp.Production))
			for i := range emp.Production {
				resp.Production[i] = h.toProductionResponse(&emp.Production[i])
			}
		}
	}

	return resp
}

func (h *EmployeeHandler) toAttendanceResponse(rec *domain.AttendanceRecord) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		Date:        rec.Date.Format(dateLayout),
		ClockIn:     rec.ClockIn,
		ClockOut:    rec.ClockOut,
		Shift:       rec.Shift,
		Punctual:    rec.Punctual,
		HoursWorked: rec.HoursWorked,
		Status:      rec.Status,
	}
}

func (h *EmployeeHandler) toProductionResponse(rec *domain.ProductionRecord) dto.ProductionResponse {
	return dto.ProductionResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.Format(dateLayout),
		Shift:      rec.Shift,
		Units:      rec.Units,
	}
}

func (h *EmployeeHandler) toEmployeePageResponse(r *http.Request, page *domain.EmployeePage) dto.EmployeePageResponse {
	resp := dto.EmployeePageResponse{
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Data:       make([]dto.EmployeeResponse, len(page.Employees)),
	}

	for i := range page.Employees {
		resp.Data[i] = h.toEmployeeResponse(&page.Employees[i], true)
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s/employees", scheme, r.Host)

	if page.Page < page.TotalPages {
		next := fmt.Sprintf("%s?page=%d&limit=%d", baseURL, page.Page+1, page.PageSize)
		resp.Next = &next
	}
	if page.Page > 1 {
		prev := fmt.Sprintf("%s?page=%d&limit=%d", baseURL, page.Page-1, page.PageSize)
		resp.Prev = &prev
	}

	return resp
}

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrAttendanceNotFound):
		h.respondError(w, http.StatusNotFound, "attendance record not found", "")
	case errors.Is(err, domain.ErrShiftAlreadyActive):
		h.respondError(w, http.StatusConflict, "shift already active for today", "")
	case errors.Is(err, domain.ErrNoActiveShift):
		h.respondError(w, http.StatusConflict, "no active shift for this employee", "")
	case errors.Is(err, domain.ErrInvalidDateRange):
		h.respondError(w, http.StatusBadRequest, "invalid date range, use DD/MM/YYYY", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
