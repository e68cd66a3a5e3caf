package response

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/service"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		ValidationError(w, "Validation failed", map[string]string{
			validationErr.Field: validationErr.Message,
		})
		return
	}

	var storageErr *service.StorageError
	if errors.As(err, &storageErr) {
		logrus.WithError(storageErr.Err).WithField("op", storageErr.Op).Error("Storage failure")
		InternalServerError(w, "Storage failure")
		return
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		Forbidden(w, err.Error())

	case errors.Is(err, service.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, service.ErrOffDayNotFound):
		NotFound(w, "Off day request not found")
	case errors.Is(err, service.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, service.ErrBillNotFound):
		NotFound(w, "Bill not found")

	case errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrChatIDTaken):
		Conflict(w, err.Error())
	case errors.Is(err, service.ErrNotificationDisabled):
		ServiceUnavailable(w, err.Error())

	default:
		logrus.WithError(err).Error("Unhandled error")
		InternalServerError(w, "An unexpected error occurred")
	}
}
