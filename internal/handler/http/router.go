package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"salary-admin/internal/app"
	"salary-admin/internal/handler/http/middleware"
	"salary-admin/internal/handler/http/response"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *logrus.Logger
}

func NewRouter(services *app.Services, cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	employeeHandler := NewEmployeeHandler(services.Employees)
	attendanceHandler := NewAttendanceHandler(services.Attendance, services.Employees, services.Reports)
	offDayHandler := NewOffDayHandler(services.OffDays, services.Employees)
	advanceHandler := NewAdvanceHandler(services.Advances, services.Employees)
	billHandler := NewBillHandler(services.Bills, services.Employees)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.ActorHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ActorRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Get("/attendance", attendanceHandler.Get)
				r.Post("/attendance", attendanceHandler.Update)
				r.Get("/off-days", offDayHandler.ListByEmployee)
				r.Get("/advances", advanceHandler.ListByEmployee)
				r.Get("/bills", billHandler.ListByEmployee)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/recompute", attendanceHandler.RecomputeAll)
			r.Get("/report", attendanceHandler.Report)
		})

		r.Route("/off-days", func(r chi.Router) {
			r.Post("/", offDayHandler.Create)
			r.Post("/{id}/approve", offDayHandler.Approve)
			r.Post("/{id}/reject", offDayHandler.Reject)
		})

		r.Route("/advances", func(r chi.Router) {
			r.Post("/", advanceHandler.Create)
			r.Get("/pending", advanceHandler.ListPending)
			r.Post("/pending/notify", advanceHandler.NotifyPending)
			r.Post("/{id}/decision", advanceHandler.Decide)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", billHandler.ListAll)
			r.Post("/", billHandler.Create)
			r.Get("/recorded", billHandler.ListRecorded)
			r.Put("/{id}", billHandler.Update)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
