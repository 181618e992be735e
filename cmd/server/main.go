package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nikhilbhatia/shift-management-api/pkg/auth"
	"github.com/nikhilbhatia/shift-management-api/pkg/database"
	"github.com/nikhilbhatia/shift-management-api/pkg/handlers"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	if err := auth.EnsureAdminExists(db); err != nil {
		logger.Fatal("could not seed admin account", zap.Error(err))
	}
	h := &handlers.Handler{DB: db, Logger: logger}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Shift Management System API",
		})
	})

	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/init-admin", h.InitAdmin)

	admin := r.Group("/api/admin")
	admin.Use(h.AuthMiddleware(), h.RequireUserType(auth.UserTypeAdmin))
	{
		admin.GET("/departments", h.ListDepartments)
		admin.POST("/departments", h.CreateDepartment)
		admin.PUT("/departments/:id", h.UpdateDepartment)
		admin.DELETE("/departments/:id", h.DeleteDepartment)

		admin.GET("/managers", h.ListManagers)
		admin.POST("/managers", h.CreateManager)
		admin.PUT("/managers/:id", h.UpdateManager)
		admin.DELETE("/managers/:id", h.DeleteManager)
	}

	manager := r.Group("/api/manager")
	manager.Use(h.AuthMiddleware(), h.RequireUserType(auth.UserTypeManager))
	{
		manager.GET("/roles", h.ListRoles)
		manager.POST("/roles", h.CreateRole)
		manager.PUT("/roles/:id", h.UpdateRole)
		manager.DELETE("/roles/:id", h.DeleteRole)

		manager.GET("/shifts", h.ListShifts)
		manager.POST("/shifts", h.CreateShift)
		manager.PUT("/shifts/:id", h.UpdateShift)
		manager.DELETE("/shifts/:id", h.DeleteShift)

		manager.GET("/employees", h.ListEmployees)
		manager.POST("/employees", h.CreateEmployee)
		manager.PUT("/employees/:id", h.UpdateEmployee)
		manager.DELETE("/employees/:id", h.DeleteEmployee)

		manager.GET("/schedules", h.ListSchedules)
		manager.POST("/schedules", h.CreateSchedule)
		manager.POST("/schedules/generate", h.GenerateSchedules)
		manager.DELETE("/schedules/:id", h.DeleteSchedule)

		manager.GET("/holidays", h.ListHolidays)
		manager.POST("/holidays", h.CreateHoliday)

		manager.GET("/attendance", h.ListAttendance)

		manager.GET("/overtime", h.ListOvertimeRequests)
		manager.PUT("/overtime/:id/approve", h.ApproveOvertime)

		manager.GET("/leaves", h.ListLeaveRequests)
		manager.PUT("/leaves/:id/approve", h.ApproveLeave)
	}

	employee := r.Group("/api/employee")
	employee.Use(h.AuthMiddleware(), h.RequireUserType(auth.UserTypeEmployee))
	{
		employee.GET("/schedules", h.ListMySchedules)
		employee.POST("/clock-in", h.ClockIn)
		employee.POST("/clock-out", h.ClockOut)
		employee.GET("/attendance", h.ListMyAttendance)
		employee.GET("/overtime", h.ListMyOvertime)
		employee.POST("/overtime", h.RequestOvertime)
		employee.GET("/leaves", h.ListMyLeaves)
		employee.POST("/leaves", h.RequestLeave)
		employee.GET("/profile", h.MyProfile)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
