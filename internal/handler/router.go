package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hrms-lite-console/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	empHandler   *EmployeeHandler
	attHandler   *AttendanceHandler
	statsHandler *StatsHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, attHandler *AttendanceHandler, statsHandler *StatsHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		empHandler:   empHandler,
		attHandler:   attHandler,
		statsHandler: statsHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/api/employees", r.employeesRouter)
	r.mux.HandleFunc("/api/employees/", r.employeesRouter)
	r.mux.HandleFunc("/api/attendance", r.attendanceRouter)
	r.mux.HandleFunc("/api/attendance/", r.attendanceRouter)
	r.mux.HandleFunc("/api/stats/", r.statsRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","message":"HRMS Lite API is running"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /api/employees
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/api/employees")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodGet:
			r.empHandler.List(w, req)
		case http.MethodPost:
			r.empHandler.Create(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if !strings.Contains(path, "/") {
		// /api/employees/{id}
		switch req.Method {
		case http.MethodGet:
			r.empHandler.GetByID(w, req)
		case http.MethodPut:
			r.empHandler.Update(w, req)
		case http.MethodDelete:
			r.empHandler.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	notFound(w)
}

// attendanceRouter обрабатывает все запросы к /api/attendance
func (r *Router) attendanceRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/api/attendance")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodGet:
			r.attHandler.List(w, req)
		case http.MethodPost:
			r.attHandler.Create(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 2 && parts[0] == "employee" {
		// /api/attendance/employee/{employeeId}
		if req.Method == http.MethodGet {
			r.attHandler.ListByEmployee(w, req)
			return
		}
		methodNotAllowed(w)
		return
	}

	if len(parts) == 1 {
		// /api/attendance/{id}
		switch req.Method {
		case http.MethodPut:
			r.attHandler.Update(w, req)
		case http.MethodDelete:
			r.attHandler.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	notFound(w)
}

// statsRouter обрабатывает запросы статистики
func (r *Router) statsRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(req.URL.Path, "/api/stats/")
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 2 && parts[0] == "employees" && parts[1] == "count":
		r.statsHandler.EmployeeCount(w, req)
	case len(parts) == 3 && parts[0] == "employees" && parts[2] == "attendance-summary":
		r.statsHandler.AttendanceSummary(w, req)
	default:
		notFound(w)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"detail":"Method not allowed"}`, http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, `{"detail":"Not found"}`, http.StatusNotFound)
}
