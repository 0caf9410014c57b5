package app

import (
	"database/sql"

	"github.com/karanprajapat824/hr-system/internal/attendance"
	"github.com/karanprajapat824/hr-system/internal/auth"
	"github.com/karanprajapat824/hr-system/internal/dashboard"
	"github.com/karanprajapat824/hr-system/internal/employee"
	"github.com/karanprajapat824/hr-system/internal/leave"
	"github.com/karanprajapat824/hr-system/internal/messaging/kafka"
	"github.com/karanprajapat824/hr-system/internal/middleware"
	"github.com/karanprajapat824/hr-system/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	clk := clock.New()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, employeeRepo, outboxRepo, clk)
	attendanceService := attendance.NewService(db, attendanceRepo, clk)
	authService := auth.NewService(employeeRepo, leaveService, attendanceService, clk)
	dashboardService := dashboard.NewService(employeeRepo, leaveService, attendanceRepo, rdb, clk)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService, rdb)
	attendanceHandler := attendance.NewHandler(attendanceService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		attendance.RegisterRoutes(api, attendanceHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
	}

	return nil
}
