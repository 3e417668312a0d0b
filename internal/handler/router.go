package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/empleados-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	empHandler *EmployeeHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		empHandler: empHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/employees", r.employeesRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /employees/
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/employees")
	path = strings.Trim(path, "/")

	// POST /employees - создание, GET /employees - список с пагинацией
	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.empHandler.Create(w, req)
		case http.MethodGet:
			r.empHandler.List(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")

	// Отчётные маршруты идут до маршрутов с {id}
	if parts[0] == "reports" {
		if len(parts) != 2 || req.Method != http.MethodGet {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		switch parts[1] {
		case "payroll":
			r.empHandler.Payroll(w, req)
		case "attendance-count":
			r.empHandler.AttendanceCount(w, req)
		case "worked-days":
			r.empHandler.WorkedDays(w, req)
		case "attendance":
			r.empHandler.AttendanceReport(w, req)
		case "production":
			r.empHandler.ProductionReport(w, req)
		default:
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		}
		return
	}

	if len(parts) == 1 {
		// /employees/{id}
		switch req.Method {
		case http.MethodGet:
			r.empHandler.GetByID(w, req)
		case http.MethodPatch:
			r.empHandler.Update(w, req)
		case http.MethodDelete:
			r.empHandler.Delete(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	if len(parts) == 2 {
		// /employees/{id}/{action}
		switch {
		case parts[1] == "clock-in" && req.Method == http.MethodPost:
			r.empHandler.ClockIn(w, req)
		case parts[1] == "clock-out" && req.Method == http.MethodPatch:
			r.empHandler.ClockOut(w, req)
		case parts[1] == "production" && req.Method == http.MethodPost:
			r.empHandler.RecordProduction(w, req)
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}
