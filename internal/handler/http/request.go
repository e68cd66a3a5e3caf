package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"salary-admin/internal/handler/http/middleware"
	"salary-admin/internal/handler/http/response"
	"salary-admin/internal/models"
	"salary-admin/internal/service"
	"salary-admin/pkg/dates"
)

type CreateEmployeeRequest struct {
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	Role                models.Role     `json:"role"`
	Salary              decimal.Decimal `json:"salary"`
	PhoneNo             string          `json:"phone_no"`
	Email               string          `json:"email"`
	ChatID              int64           `json:"chat_id"`
	EmploymentStartDate string          `json:"employment_start_date"`
}

type CreateOffDayRequest struct {
	Date     string         `json:"date"`
	DayCount *int           `json:"day_count"`
	OffType  models.OffType `json:"off_type"`
	Reason   string         `json:"reason"`
}

type CreateAdvanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type AdvanceDecisionRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

type CreateBillRequest struct {
	EmployeeID uint            `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Reason     string          `json:"reason"`
}

type UpdateBillRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
	Reason *string          `json:"reason"`
}

// decodeJSON пишет 400 и возвращает false, если тело не разобрано
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// actorID пишет 401 и возвращает false без заголовка сотрудника
func actorID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, middleware.ActorHeader+" header is required")
	}
	return id, ok
}

// loadActor загружает сотрудника из заголовка; неизвестный id дает 404
func loadActor(w http.ResponseWriter, r *http.Request, employees *service.EmployeeService) (*models.Employee, bool) {
	id, ok := actorID(w, r)
	if !ok {
		return nil, false
	}

	actor, err := employees.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return nil, false
	}
	return actor, true
}

// authorized пишет ответ об ошибке, если проверка прав не пройдена
func authorized(w http.ResponseWriter, err error) bool {
	if err != nil {
		response.HandleError(w, err)
		return false
	}
	return true
}

func urlID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(w, "invalid id parameter", nil)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalDate: пустая строка дает нулевую дату ("сегодня" для сервисов)
func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dates.Parse(value, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return t, nil
}

func dateQuery(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	t, err := parseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "invalid date parameter", map[string]string{"date": err.Error()})
		return time.Time{}, false
	}
	return t, true
}
