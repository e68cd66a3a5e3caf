package http

import (
	"net/http"

	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/service"
)

type BillHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ListRecorded(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type billHandlerImpl struct {
	billService     *service.BillService
	employeeService *service.EmployeeService
}

func NewBillHandler(billService *service.BillService, employeeService *service.EmployeeService) BillHandler {
	return &billHandlerImpl{billService: billService, employeeService: employeeService}
}

// Create handles POST /bills
func (h *billHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req CreateBillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		response.BadRequest(w, "invalid date", map[string]string{"date": err.Error()})
		return
	}

	bill, err := h.billService.AddBill(r.Context(), actor, req.EmployeeID, req.Amount, date, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Bill added", bill)
}

// Update handles PUT /bills/{id}
func (h *billHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req UpdateBillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	update := service.BillUpdate{Amount: req.Amount, Reason: req.Reason}
	if req.Date != nil {
		date, err := parseOptionalDate(*req.Date)
		if err != nil || date.IsZero() {
			response.BadRequest(w, "invalid date", nil)
			return
		}
		update.Date = &date
	}

	bill, err := h.billService.UpdateBill(r.Context(), id, actor, update)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Bill updated", bill)
}

// ListAll handles GET /bills (только администраторы)
func (h *billHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	bills, err := h.billService.GetAllBills(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, bills)
}

// ListRecorded handles GET /bills/recorded (счета, внесенные текущим сотрудником)
func (h *billHandlerImpl) ListRecorded(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	bills, err := h.billService.GetRecordedBills(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, bills)
}

// ListByEmployee handles GET /employees/{id}/bills
func (h *billHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if !authorized(w, service.AuthorizeRecordAccess(actor, id)) {
		return
	}

	bills, err := h.billService.GetEmployeeBills(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, bills)
}
