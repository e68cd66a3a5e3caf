package http

import (
	"net/http"

	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/models"
	"salary-admin/internal/service"
)

type OffDayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type offDayHandlerImpl struct {
	offDayService   *service.OffDayService
	employeeService *service.EmployeeService
}

func NewOffDayHandler(offDayService *service.OffDayService, employeeService *service.EmployeeService) OffDayHandler {
	return &offDayHandlerImpl{offDayService: offDayService, employeeService: employeeService}
}

// Create handles POST /off-days (заявка от имени текущего сотрудника)
func (h *offDayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req CreateOffDayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		response.BadRequest(w, "invalid date", map[string]string{"date": err.Error()})
		return
	}

	dayCount := 1
	if req.DayCount != nil {
		dayCount = *req.DayCount
	}

	offDay, err := h.offDayService.RequestOffDay(r.Context(), actor, date, dayCount, req.OffType, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Off day requested", offDay)
}

// ListByEmployee handles GET /employees/{id}/off-days
func (h *offDayHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if !authorized(w, service.AuthorizeRecordAccess(actor, id, models.PermissionOffDayApprove)) {
		return
	}

	offDays, err := h.offDayService.GetEmployeeOffDays(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, offDays)
}

// Approve handles POST /off-days/{id}/approve
func (h *offDayHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

// Reject handles POST /off-days/{id}/reject
func (h *offDayHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *offDayHandlerImpl) review(w http.ResponseWriter, r *http.Request, approve bool) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	offDay, err := h.offDayService.ReviewOffDay(r.Context(), actor, id, approve)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Off day rejected"
	if approve {
		message = "Off day approved"
	}
	response.SuccessWithMessage(w, message, offDay)
}
