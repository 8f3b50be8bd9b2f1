package main

import (
	"fmt"
	"net/http"

	"github.com/hrmsuite/time-management-backend-go/internal/config"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	appHTTP "github.com/hrmsuite/time-management-backend-go/internal/handler/http"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/cron"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/database"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/email"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/jwt"
	"github.com/hrmsuite/time-management-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrmsuite/time-management-backend-go/internal/service/attendance"
	authService "github.com/hrmsuite/time-management-backend-go/internal/service/auth"
	correctionService "github.com/hrmsuite/time-management-backend-go/internal/service/correction"
	holidayService "github.com/hrmsuite/time-management-backend-go/internal/service/holiday"
	notificationService "github.com/hrmsuite/time-management-backend-go/internal/service/notification"
	shiftService "github.com/hrmsuite/time-management-backend-go/internal/service/shift"
	exceptionService "github.com/hrmsuite/time-management-backend-go/internal/service/timeexception"
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

	recordRepo := postgresql.NewAttendanceRepository(db)
	exceptionRepo := postgresql.NewTimeExceptionRepository(db)
	correctionRepo := postgresql.NewCorrectionRequestRepository(db)
	shiftRepo := postgresql.NewShiftAssignmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	notificationRepo := postgresql.NewNotificationLogRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var sink notification.Sink
	if cfg.SMTP.Host != "" {
		sink = email.NewSink(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, postgresql.NewEmployeeEmailResolver(db))
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo, sink)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		recordRepo,
		exceptionRepo,
		holidayRepo,
		notificationSvc,
		attendanceService.Config{
			DefaultReviewer:     ref.EmployeeID(cfg.Lifecycle.DefaultReviewerID),
			StandardWorkMinutes: cfg.Lifecycle.StandardWorkMinutes,
		},
	)
	exceptionSvc := exceptionService.NewExceptionService(
		txManager,
		exceptionRepo,
		recordRepo,
		attendanceSvc,
		notificationSvc,
	)
	correctionSvc := correctionService.NewCorrectionService(
		txManager,
		correctionRepo,
		recordRepo,
		notificationSvc,
	)
	shiftSvc := shiftService.NewShiftService(
		txManager,
		shiftRepo,
		notificationSvc,
		shiftService.Config{
			HRRecipient: ref.EmployeeID(cfg.Lifecycle.HRRecipientID),
		},
	)
	authSvc := authService.NewAuthService(userRepo, jwtSvc)

	router := appHTTP.NewRouter(jwtSvc, appHTTP.Handlers{
		Auth:          appHTTP.NewAuthHandler(authSvc),
		Attendance:    appHTTP.NewAttendanceHandler(attendanceSvc),
		TimeException: appHTTP.NewTimeExceptionHandler(exceptionSvc),
		Correction:    appHTTP.NewCorrectionHandler(correctionSvc),
		Shift:         appHTTP.NewShiftHandler(shiftSvc),
		Holiday:       appHTTP.NewHolidayHandler(holidaySvc),
		Notification:  appHTTP.NewNotificationHandler(notificationSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewShiftJobs(shiftSvc, cfg.Lifecycle.ShiftExpiryLookaheadDays).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
