package main

import (
	"fmt"
	"net/http"

	"github.com/praxishr/timecontrol-backend-go/internal/config"
	appHTTP "github.com/praxishr/timecontrol-backend-go/internal/handler/http"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/cron"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/jwt"
	"github.com/praxishr/timecontrol-backend-go/internal/repository/postgresql"
	attendanceService "github.com/praxishr/timecontrol-backend-go/internal/service/attendance"
	biometricService "github.com/praxishr/timecontrol-backend-go/internal/service/biometric"
	ledgerService "github.com/praxishr/timecontrol-backend-go/internal/service/ledger"
	reportService "github.com/praxishr/timecontrol-backend-go/internal/service/report"
	scheduleService "github.com/praxishr/timecontrol-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	mappingRepo := postgresql.NewMappingRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	scheduleSvc := scheduleService.NewScheduleService(db, workScheduleRepo, holidayRepo)
	ledgerSvc := ledgerService.NewLedgerService(txManager, ledgerRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceService.CompilerConfig{
			DailyCapMinutes:      cfg.Attendance.DailyCapMinutes,
			WorkdayMultiplierPct: cfg.Attendance.WorkdayMultiplierPct,
			RestDayMultiplierPct: cfg.Attendance.RestDayMultiplierPct,
			HolidayMultiplierPct: cfg.Attendance.HolidayMultiplierPct,
			NightShiftStartHour:  cfg.Attendance.NightShiftStartHour,
			NightShiftEndHour:    cfg.Attendance.NightShiftEndHour,
		},
		txManager,
		punchRepo,
		recordRepo,
		employeeRepo,
		scheduleSvc,
		ledgerSvc,
	)
	biometricSvc := biometricService.NewBiometricService(mappingRepo, punchRepo, employeeRepo, attendanceSvc)
	reportSvc := reportService.NewReportService(reportRepo)

	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc)
	biometricHandler := appHTTP.NewBiometricHandler(biometricSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		scheduleHandler,
		attendanceHandler,
		ledgerHandler,
		biometricHandler,
		reportHandler,
	)

	jobs, err := cron.NewTimecontrolJobs(
		employeeRepo,
		ledgerRepo,
		ledgerSvc,
		attendanceSvc,
		cfg.Vacation.AccrualDaysPerPeriod,
	)
	if err != nil {
		fmt.Println("Error initializing scheduled jobs:", err)
		return
	}

	scheduler := cron.NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
