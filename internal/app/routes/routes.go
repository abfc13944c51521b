package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/controllers"
	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/middleware"
)

// Pinger checks connectivity to the backing database
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	attendanceController *controllers.AttendanceController,
	permissionController *controllers.PermissionController,
	feedbackController *controllers.FeedbackController,
	dashboardController *controllers.DashboardController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	pinger Pinger,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Student self-service
		authenticated.GET("/students/me", studentController.GetOwnProfile)
		authenticated.POST("/permissions", permissionController.RequestPermission)
		authenticated.GET("/permissions/mine", permissionController.GetOwnPermissions)
		authenticated.POST("/feedback", feedbackController.SendFeedback)
	}

	// --- Administrative routes ---
	admin := authenticated.Group("")
	admin.Use(authMiddleware.AdminRequired())
	{
		admin.GET("/dashboard", dashboardController.GetDashboard)

		courses := admin.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourse)
			courses.POST("", courseController.CreateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
			courses.POST("/:id/administrators", courseController.AssignAdministrator)
			courses.DELETE("/:id/administrators/:accountId", courseController.UnassignAdministrator)
		}

		students := admin.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudent)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		attendance := admin.Group("/attendance")
		{
			attendance.GET("", attendanceController.GetDaySheet)
			attendance.POST("", attendanceController.SaveAttendance)
		}

		permissions := admin.Group("/permissions")
		{
			permissions.GET("", permissionController.ListPermissions)
			permissions.POST("/:id/approve", permissionController.ApprovePermission)
			permissions.POST("/:id/reject", permissionController.RejectPermission)
		}

		admin.GET("/feedback", feedbackController.ListFeedback)
		admin.GET("/reports/courses/:id", reportController.DownloadCourseReport)
	}

	// Health check endpoint (public). Also used as a keep-alive target
	// by uptime monitors, so it pings the database pool.
	v1.GET("/health", func(c *gin.Context) {
		if err := pinger.Ping(c.Request.Context()); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable")
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
			return
		}
		c.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Service healthy"))
	})
}
