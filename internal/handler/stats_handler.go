package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-lite-console/internal/dto"
	"github.com/hrms-lite-console/internal/service"
)

type StatsHandler struct {
	responder
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		responder:    responder{logger: logger},
		statsService: statsService,
	}
}

func (h *StatsHandler) EmployeeCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.statsService.EmployeeCount(r.Context())
	if err != nil {
		h.handleServiceError(w, err, errContext{})
		return
	}

	h.respondJSON(w, http.StatusOK, dto.EmployeeCountResponse{TotalEmployees: count})
}

func (h *StatsHandler) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := extractID(r, "/api/stats/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	summary, err := h.statsService.AttendanceSummary(r.Context(), employeeID)
	if err != nil {
		h.handleServiceError(w, err, errContext{ID: employeeID})
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}
