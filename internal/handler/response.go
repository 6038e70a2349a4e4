package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
)

// errContext - данные запроса, которые попадают в текст ошибки
type errContext struct {
	ID         int64
	EmployeeID string
	Email      string
	Date       string
}

type responder struct {
	logger *slog.Logger
}

func (h *responder) handleServiceError(w http.ResponseWriter, err error, ec errContext) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("Employee with ID %d not found", ec.ID))
	case errors.Is(err, domain.ErrAttendanceNotFound):
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("Attendance record with ID %d not found", ec.ID))
	case errors.Is(err, domain.ErrDuplicateEmployeeID):
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Employee ID '%s' already exists", ec.EmployeeID))
	case errors.Is(err, domain.ErrDuplicateEmail):
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Email '%s' already in use", ec.Email))
	case errors.Is(err, domain.ErrDuplicateAttendance):
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("Attendance already marked for this employee on %s", ec.Date))
	case errors.Is(err, domain.ErrInvalidStatus):
		h.respondError(w, http.StatusBadRequest, "Status must be 'present' or 'absent'")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *responder) respondError(w http.ResponseWriter, status int, detail string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: detail}); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// extractID достаёт числовой идентификатор из последнего сегмента пути после prefix
func extractID(r *http.Request, prefix string) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(parts[0], 10, 64)
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Email:      emp.Email,
		Department: emp.Department,
		CreatedAt:  emp.CreatedAt.Format(domain.DateLayout),
	}
}

func toAttendanceResponse(rec *domain.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Status:     rec.Status,
	}
}
