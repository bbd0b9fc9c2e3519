package main

import (
	"fmt"
	"net/http"

	"github.com/agrifarm/farmpay-backend-go/internal/config"
	appHTTP "github.com/agrifarm/farmpay-backend-go/internal/handler/http"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/cron"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/database"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/draftstore"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/jwt"
	"github.com/agrifarm/farmpay-backend-go/internal/repository/postgresql"
	employeeService "github.com/agrifarm/farmpay-backend-go/internal/service/employee"
	payrollService "github.com/agrifarm/farmpay-backend-go/internal/service/payroll"
	settingsService "github.com/agrifarm/farmpay-backend-go/internal/service/settings"
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

	settingsRepo := postgresql.NewSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	slipRepo := postgresql.NewSlipRepository(db)

	drafts := draftstore.New(cfg.Draft.TTL)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		settingsRepo,
		employeeRepo,
		attendanceRepo,
		slipRepo,
		drafts,
		cfg.Draft.ReadTimeout,
	)

	scheduler := cron.NewScheduler()
	cron.NewDraftJobs(drafts).RegisterJobs(scheduler, cfg.Draft.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		settingsHandler,
		employeeHandler,
		payrollHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
