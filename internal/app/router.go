package app

import (
	"guruschool_backend/internal/config"
	"guruschool_backend/internal/middleware"
	"guruschool_backend/internal/model"
	"guruschool_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, profiles middleware.RoleResolver, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret, profiles)

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register/student", c.auth.RegisterStudent)
			auth.POST("/register/teacher", c.auth.RegisterTeacher)
			auth.POST("/register/super-admin", c.auth.RegisterSuperAdmin)
			auth.POST("/apply-teacher", c.auth.ApplyTeacher)
			auth.POST("/login", c.auth.Login)
			auth.GET("/me", authRequired, c.auth.Me)
		}

		courses := public.Group("/courses")
		{
			courses.GET("", c.course.ListCourses)
			courses.GET("/:id", c.course.GetCourse)
			courses.GET("/:id/modules", c.course.GetModules)
			courses.GET("/:id/price", c.course.GetPrice)
			courses.GET("/modules/:moduleId/lessons", c.course.GetLessons)
		}
	}

	teacherOnly := router.Group("/api/courses")
	teacherOnly.Use(authRequired, middleware.RoleMiddleware(model.Teacher))
	{
		teacherOnly.POST("", c.course.CreateCourse)
		teacherOnly.PUT("/:id", c.course.UpdateCourse)
		teacherOnly.DELETE("/:id", c.course.DeleteCourse)
		teacherOnly.POST("/modules", c.course.CreateModules)
		teacherOnly.POST("/lessons", c.course.CreateLessons)
		teacherOnly.POST("/upload-lesson-video", c.course.UploadLessonVideo)
	}

	teacher := router.Group("/api/teacher")
	teacher.Use(authRequired, middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/my-courses", c.teacher.MyCourses)
		teacher.GET("/course/:id/enrollments", c.teacher.CourseEnrollments)
	}

	enrollments := router.Group("/api/enrollments")
	enrollments.Use(authRequired)
	{
		// status stays open to any signed-in account; the rest is student only
		enrollments.GET("/:courseId/status", c.enrollment.Status)

		studentOnly := enrollments.Group("")
		studentOnly.Use(middleware.RoleMiddleware(model.Student))
		{
			studentOnly.POST("/:courseId", c.enrollment.Enroll)
			studentOnly.GET("/me", c.enrollment.MyEnrollments)
			studentOnly.POST("/renew/:courseId", c.enrollment.Renew)
		}
	}

	profile := router.Group("/api/profile")
	profile.Use(authRequired)
	{
		profile.GET("/me", c.profile.GetMyProfile)
		profile.PUT("/update", c.profile.UpdateProfile)
	}

	admin := router.Group("/api/admin")
	admin.Use(authRequired, middleware.RoleMiddleware(model.SuperAdmin))
	{
		admin.POST("/approve-teacher", c.admin.ApproveTeacher)
		admin.GET("/teacher-applications", c.admin.ListApplications)
		admin.POST("/set-pricing", c.admin.SetPricing)
		admin.GET("/pricing/:courseId", c.admin.ListPricing)
		admin.POST("/set-price/:courseId", c.admin.SetCoursePrice)
		admin.POST("/discounts", c.admin.CreateDiscount)
		admin.GET("/discounts", c.admin.ListDiscounts)
		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/change-role/:userId", c.admin.ChangeRole)
		admin.POST("/invites", c.admin.CreateInvite)
	}
}
