package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/service"
)

type EmployeeHandler struct {
	responder
	empService service.EmployeeService
	validator  *validator.Validate
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder:  responder{logger: logger},
		empService: empService,
		validator:  dto.NewValidator(),
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, errContext{EmployeeID: req.EmployeeID, Email: req.Email})
		return
	}

	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.empService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, errContext{})
		return
	}

	resp := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = toEmployeeResponse(&employees[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/api/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, errContext{ID: id})
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/api/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		ec := errContext{ID: id}
		if req.Email != nil {
			ec.Email = *req.Email
		}
		h.handleServiceError(w, err, ec)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/api/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, errContext{ID: id})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
