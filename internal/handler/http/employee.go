package http

import (
	"net/http"

	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/models"
	"salary-admin/internal/service"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// List handles GET /employees
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if !authorized(w, service.Authorize(actor, models.PermissionRecordsViewAll)) {
		return
	}

	employees, err := h.employeeService.GetAllEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// Create handles POST /employees
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	employee := &models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Salary:    req.Salary,
		PhoneNo:   req.PhoneNo,
		Email:     req.Email,
		ChatID:    req.ChatID,
	}

	if req.EmploymentStartDate != "" {
		start, err := parseOptionalDate(req.EmploymentStartDate)
		if err != nil {
			response.BadRequest(w, "invalid employment_start_date", nil)
			return
		}
		employee.EmploymentStartDate = &start
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), actor, employee)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", created)
}

// Get handles GET /employees/{id}
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
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

	employee, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee)
}
