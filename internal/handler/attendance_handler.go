package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-lite-console/internal/domain"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/service"
)

type AttendanceHandler struct {
	responder
	attService service.AttendanceService
	validator  *validator.Validate
}

func NewAttendanceHandler(attService service.AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		responder:  responder{logger: logger},
		attService: attService,
		validator:  dto.NewValidator(),
	}
}

func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	rec, err := h.attService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, errContext{ID: req.EmployeeID, Date: req.Date})
		return
	}

	h.respondJSON(w, http.StatusCreated, toAttendanceResponse(rec))
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, errContext{})
		return
	}
	h.respondRecords(w, records)
}

func (h *AttendanceHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := extractID(r, "/api/attendance/employee/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	records, err := h.attService.ListByEmployeeID(r.Context(), employeeID)
	if err != nil {
		h.handleServiceError(w, err, errContext{ID: employeeID})
		return
	}
	h.respondRecords(w, records)
}

func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/api/attendance/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid attendance id")
		return
	}

	var req dto.UpdateAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	rec, err := h.attService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, errContext{ID: id})
		return
	}

	h.respondJSON(w, http.StatusOK, toAttendanceResponse(rec))
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/api/attendance/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid attendance id")
		return
	}

	if err := h.attService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, errContext{ID: id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AttendanceHandler) respondRecords(w http.ResponseWriter, records []domain.Attendance) {
	resp := make([]dto.AttendanceResponse, len(records))
	for i := range records {
		resp[i] = toAttendanceResponse(&records[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}
