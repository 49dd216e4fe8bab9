package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/middleware"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
	ledgerHandler LedgerHandler,
	biometricHandler BiometricHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecontrol"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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
		// Everything requires a verified access token; issuance is the
		// identity provider's job.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListWorkSchedules)
				r.Get("/resolve", scheduleHandler.ResolveDay)
				r.Get("/{id}", scheduleHandler.GetWorkSchedule)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", scheduleHandler.CreateWorkSchedule)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListHolidays)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", scheduleHandler.CreateHoliday)
					r.Delete("/{id}", scheduleHandler.DeleteHoliday)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/{employeeID}/{date}", attendanceHandler.GetDay)

				// Supervisor surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Post("/punches", attendanceHandler.AddPunch)
					r.Post("/recalculate", attendanceHandler.Recalculate)
					r.Post("/{employeeID}/{date}/override", attendanceHandler.Override)
					r.Post("/{employeeID}/{date}/overtime/approve", attendanceHandler.ApproveOvertime)
					r.Post("/{employeeID}/{date}/overtime/reject", attendanceHandler.RejectOvertime)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Delete("/{employeeID}/{date}/override", attendanceHandler.RevertOverride)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperuser)
					r.Patch("/{employeeID}/{date}", attendanceHandler.Patch)
				})
			})

			r.Route("/ledgers/{kind}/{employeeID}", func(r chi.Router) {
				r.Get("/balance", ledgerHandler.GetBalance)
				r.Get("/transactions", ledgerHandler.ListTransactions)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/transactions", ledgerHandler.PostTransaction)
				})
			})

			r.Route("/biometric", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/mappings", func(r chi.Router) {
					r.Get("/", biometricHandler.ListMappings)
					r.Post("/", biometricHandler.CreateMapping)
					r.Put("/{id}", biometricHandler.UpdateMapping)
					r.Delete("/{id}", biometricHandler.DeleteMapping)
				})

				r.Post("/import", biometricHandler.Import)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireSupervisor)
				r.Get("/monthly", reportHandler.Monthly)
				r.Get("/tardiness", reportHandler.Tardiness)
				r.Get("/absence", reportHandler.Absence)
			})
		})
	})
	return r
}
