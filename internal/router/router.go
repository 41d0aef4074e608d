package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms-portal/internal/config"
	"hrms-portal/internal/handler"
	"hrms-portal/internal/middleware"
	"hrms-portal/internal/model"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Audit       *handler.AuditHandler
	Employees   *handler.EmployeeHandler
	Benefits    *handler.RecordHandler[model.Benefit]
	Compliances *handler.RecordHandler[model.Compliance]
	Departments *handler.RecordHandler[model.Department]
	LeaveTypes  *handler.RecordHandler[model.LeaveType]
	Attendance  *handler.AttendanceHandler
	Clock       *handler.ClockHandler
	Payroll     *handler.PayrollHandler
	Docs        *handler.DocsHandler
	Events      http.HandlerFunc
}

// crud is the route set of a plain record collection.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func New(cfg *config.Config, auth *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/swagger", h.Docs.SwaggerUI)

	writers := auth.RequireRoles(model.RoleAdmin, model.RoleHR)
	reviewers := auth.RequireRoles(model.RoleAdmin, model.RoleHR, model.RoleManager)
	transfer := middleware.StreamingTimeout(cfg.TransferTimeout, cfg.TransferIdleTimeout)

	r.Route("/api/v1", func(api chi.Router) {
		// The websocket stream and photo transfers must not be buffered by
		// the JSON timeout.
		api.With(auth.RequireAuth).Get("/ws", h.Events)
		api.With(auth.RequireAuth, transfer).Get("/employees/{id}/photo", h.Employees.Photo)
		api.With(auth.RequireAuth, writers, transfer).Post("/employees", h.Employees.Create)

		api.Group(func(j chi.Router) {
			j.Use(middleware.Timeout(cfg.RequestTimeout))

			j.Post("/auth/login", h.Auth.Login)

			j.Group(func(p chi.Router) {
				p.Use(auth.RequireAuth)

				p.With(auth.RequireRoles(model.RoleAdmin)).Post("/auth/register", h.Auth.Register)
				p.With(writers).Get("/users", h.Auth.ListUsers)
				p.With(auth.RequireRoles(model.RoleAdmin)).Get("/audit", h.Audit.List)

				p.Get("/employees", h.Employees.List)
				p.Get("/employees/{id}", h.Employees.Get)
				p.With(writers).Put("/employees/{id}", h.Employees.Update)
				p.With(writers).Delete("/employees/{id}", h.Employees.Delete)

				mountRecords(p, "/benefits", h.Benefits, writers)
				mountRecords(p, "/compliances", h.Compliances, writers)
				mountRecords(p, "/departments", h.Departments, writers)
				mountRecords(p, "/leave-types", h.LeaveTypes, writers)

				p.Get("/attendance/status", h.Clock.Status)
				p.Post("/attendance/clock-in", h.Clock.ClockIn)
				p.Post("/attendance/clock-out", h.Clock.ClockOut)

				p.Route("/attendance/regularizations", func(a chi.Router) {
					a.Get("/", h.Attendance.List)
					a.Post("/", h.Attendance.Request)
					a.With(reviewers).Put("/{id}/approve", h.Attendance.Approve)
					a.With(reviewers).Put("/{id}/reject", h.Attendance.Reject)
				})

				p.With(auth.RequireRoles(model.RoleAdmin, model.RoleHR, model.RoleFinance)).Post("/payroll/generate", h.Payroll.Generate)
				p.Get("/payroll", h.Payroll.View)
			})
		})
	})

	return r
}

func mountRecords(r chi.Router, path string, h crud, writers func(http.Handler) http.Handler) {
	r.Route(path, func(c chi.Router) {
		c.Get("/", h.List)
		c.Get("/{id}", h.Get)
		c.With(writers).Post("/", h.Create)
		c.With(writers).Put("/{id}", h.Update)
		c.With(writers).Delete("/{id}", h.Delete)
	})
}
