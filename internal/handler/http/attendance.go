package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/models"
	"salary-admin/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	RecomputeAll(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *service.AttendanceService
	employeeService   *service.EmployeeService
	reportService     *service.ReportService
}

func NewAttendanceHandler(
	attendanceService *service.AttendanceService,
	employeeService *service.EmployeeService,
	reportService *service.ReportService,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		employeeService:   employeeService,
		reportService:     reportService,
	}
}

// Get handles GET /employees/{id}/attendance?date=YYYY-MM-DD (без сохранения)
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	referenceDate, ok := dateQuery(w, r)
	if !ok {
		return
	}

	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if !authorized(w, service.AuthorizeAttendanceUpdate(actor, id)) {
		return
	}

	employee, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	attendance, err := h.attendanceService.Calculate(r.Context(), employee, referenceDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance)
}

// Update handles POST /employees/{id}/attendance?date=YYYY-MM-DD
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	referenceDate, ok := dateQuery(w, r)
	if !ok {
		return
	}

	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if err := service.AuthorizeAttendanceUpdate(actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	employee, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.attendanceService.UpdateAttendance(r.Context(), employee, referenceDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", updated)
}

// RecomputeAll handles POST /attendance/recompute?date=YYYY-MM-DD
func (h *attendanceHandlerImpl) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	referenceDate, ok := dateQuery(w, r)
	if !ok {
		return
	}

	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if err := service.Authorize(actor, models.PermissionAttendanceUpdate); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.attendanceService.RecomputeAll(r.Context(), referenceDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int{"updated": updated})
}

// Report handles GET /attendance/report
func (h *attendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if err := service.Authorize(actor, models.PermissionRecordsViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	// Буфер: при ошибке построения еще можно отдать JSON
	var buf bytes.Buffer
	if err := h.reportService.WriteAttendanceReport(r.Context(), &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
