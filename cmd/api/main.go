package main

import (
	"fmt"
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/config"
	appHTTP "github.com/genbaworks/kintai-backend-go/internal/handler/http"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/cron"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/jwt"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/sse"
	"github.com/genbaworks/kintai-backend-go/internal/repository/postgresql"
	alertService "github.com/genbaworks/kintai-backend-go/internal/service/alert"
	attendanceService "github.com/genbaworks/kintai-backend-go/internal/service/attendance"
	serviceAuth "github.com/genbaworks/kintai-backend-go/internal/service/auth"
	serviceCompany "github.com/genbaworks/kintai-backend-go/internal/service/company"
	employeeService "github.com/genbaworks/kintai-backend-go/internal/service/employee"
	exportService "github.com/genbaworks/kintai-backend-go/internal/service/export"
	salaryService "github.com/genbaworks/kintai-backend-go/internal/service/salary"
	siteService "github.com/genbaworks/kintai-backend-go/internal/service/site"
	userService "github.com/genbaworks/kintai-backend-go/internal/service/user"
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

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	alertRepo := postgresql.NewAlertRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService)
	companySvc := serviceCompany.NewCompanyService(db, companyRepo, hub)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, siteRepo)
	siteSvc := siteService.NewSiteService(db, siteRepo)
	userSvc := userService.NewUserService(db, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		siteRepo,
		companyRepo,
		salaryRepo,
	)
	salarySvc := salaryService.NewSalaryService(
		db,
		salaryRepo,
		attendanceRepo,
		employeeRepo,
		companyRepo,
	)
	alertSvc := alertService.NewAlertService(
		db,
		alertRepo,
		attendanceRepo,
		employeeRepo,
		companyRepo,
		userRepo,
		hub,
	)
	exportSvc := exportService.NewExportService(attendanceRepo, salaryRepo, companyRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	siteHandler := appHTTP.NewSiteHandler(siteSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, exportSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc, exportSvc)
	alertHandler := appHTTP.NewAlertHandler(alertSvc, JWTService, hub)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		employeeHandler,
		siteHandler,
		attendanceHandler,
		salaryHandler,
		alertHandler,
		companyHandler,
		userHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		jobs := cron.NewAttendanceJobs(attendanceRepo, employeeRepo, companyRepo, attendanceSvc, alertSvc)
		jobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
