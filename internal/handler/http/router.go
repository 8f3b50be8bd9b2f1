package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrmsuite/time-management-backend-go/internal/handler/http/middleware"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth          AuthHandler
	Attendance    AttendanceHandler
	TimeException TimeExceptionHandler
	Correction    CorrectionHandler
	Shift         ShiftHandler
	Holiday       HolidayHandler
	Notification  NotificationHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "time-management-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.Refresh)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/punch", h.Attendance.Punch)
				r.Get("/{id}", h.Attendance.GetRecord)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Get("/", h.Attendance.ListRecords)
					r.Post("/{id}/recompute", h.Attendance.Recompute)
				})
			})

			r.Route("/time-exceptions", func(r chi.Router) {
				r.Get("/", h.TimeException.ListExceptions)
				r.Get("/{id}", h.TimeException.GetException)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Post("/", h.TimeException.CreateManual)
					r.Post("/{id}/transition", h.TimeException.Transition)
				})
			})

			r.Route("/correction-requests", func(r chi.Router) {
				r.Post("/", h.Correction.Submit)
				r.Get("/", h.Correction.ListRequests)
				r.Get("/{id}", h.Correction.GetRequest)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Post("/{id}/review", h.Correction.Review)
					r.Post("/{id}/escalate", h.Correction.Escalate)
					r.Post("/{id}/resolve", h.Correction.Resolve)
				})
			})

			r.Route("/shift-assignments", func(r chi.Router) {
				r.Get("/", h.Shift.ListAssignments)
				r.Get("/{id}", h.Shift.GetAssignment)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Post("/", h.Shift.CreateAssignment)
					r.Get("/expiring", h.Shift.ScanExpiring)
					r.Post("/expiring/notify", h.Shift.NotifyExpiring)
					r.Post("/{id}/approve", h.Shift.ApproveAssignment)
					r.Post("/{id}/cancel", h.Shift.CancelAssignment)
					r.Post("/{id}/expire", h.Shift.ExpireAssignment)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.ListHolidays)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HRAdminOnly)
					r.Post("/", h.Holiday.CreateHoliday)
				})
			})

			// HR admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.HRAdminOnly)
				r.Get("/notifications", h.Notification.ListLogs)
			})
		})
	})
	return r
}
