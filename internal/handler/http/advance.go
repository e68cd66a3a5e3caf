package http

import (
	"net/http"

	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/models"
	"salary-admin/internal/service"
)

type AdvanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	NotifyPending(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService  *service.AdvanceService
	employeeService *service.EmployeeService
}

func NewAdvanceHandler(advanceService *service.AdvanceService, employeeService *service.EmployeeService) AdvanceHandler {
	return &advanceHandlerImpl{advanceService: advanceService, employeeService: employeeService}
}

// Create handles POST /advances
func (h *advanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req CreateAdvanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	advance, err := h.advanceService.RequestAdvance(r.Context(), actor, req.Amount, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Advance requested", advance)
}

// ListPending handles GET /advances/pending
func (h *advanceHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if !authorized(w, service.Authorize(actor, models.PermissionAdvanceApprove)) {
		return
	}

	advances, err := h.advanceService.GetPendingAdvances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, advances)
}

// ListByEmployee handles GET /employees/{id}/advances
func (h *advanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	actor, ok := loadActor(w, r, h.employeeService)
	if !ok {
		return
	}
	if !authorized(w, service.AuthorizeRecordAccess(actor, id, models.PermissionAdvanceApprove)) {
		return
	}

	advances, err := h.advanceService.GetEmployeeAdvances(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, advances)
}

// Decide handles POST /advances/{id}/decision
func (h *advanceHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req AdvanceDecisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	advance, err := h.advanceService.ApproveAdvance(r.Context(), id, actor, req.Approved, req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Advance "+string(advance.Status), advance)
}

// NotifyPending handles POST /advances/pending/notify
func (h *advanceHandlerImpl) NotifyPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	count, err := h.advanceService.NotifyPendingAdvances(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int{"pending": count})
}
