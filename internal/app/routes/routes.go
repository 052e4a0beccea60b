package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lucasferr/cursada/internal/app/controllers"
	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	categoryController *controllers.CategoryController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	prerequisiteController *controllers.PrerequisiteController,
	assignmentController *controllers.AssignmentController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", categoryController.GetAllCategories)
		categories.GET("/:id", categoryController.GetCategory)
		categories.GET("/:id/courses", courseController.GetCoursesByCategory)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetPublishedCourses)
		courses.GET("/popular", courseController.GetPopularCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/sections", courseController.GetSections)
		courses.GET("/:id/prerequisites", prerequisiteController.GetPrerequisites)
		courses.GET("/:id/dependents", prerequisiteController.GetDependentCourses)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)

		authenticated.GET("/courses/:id/prerequisites/eligibility", prerequisiteController.GetEligibility)

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", enrollmentController.Enroll)
			enrollments.GET("/me", enrollmentController.GetMyEnrollments)
		}

		authenticated.GET("/courses/:id/grades/me", enrollmentController.GetMyGrade)

		// Instructor routes: course content and grading
		instructor := authenticated.Group("")
		instructor.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
		{
			instructor.GET("/courses/:id/students", enrollmentController.GetCourseStudents)
			instructor.PUT("/courses/:id/grades", enrollmentController.RecordGrade)
			instructor.POST("/courses/:id/sections", courseController.CreateSection)
			instructor.PUT("/sections/:id", courseController.UpdateSection)
			instructor.DELETE("/sections/:id", courseController.DeleteSection)
			instructor.GET("/assignments/me", assignmentController.GetMyCourses)
		}

		// Admin routes: catalog, prerequisites, assignments and stats
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/categories", categoryController.CreateCategory)
			admin.PUT("/categories/:id", categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", categoryController.DeleteCategory)

			admin.GET("/courses/all", courseController.GetAllCourses)
			admin.POST("/courses", courseController.CreateCourse)
			admin.PUT("/courses/:id", courseController.UpdateCourse)
			admin.POST("/courses/:id/publish", courseController.PublishCourse)
			admin.DELETE("/courses/:id", courseController.DeleteCourse)
			admin.POST("/courses/:id/image", courseController.UploadCourseImage)

			admin.POST("/courses/:id/prerequisites", prerequisiteController.AddPrerequisite)
			admin.DELETE("/courses/:id/prerequisites/:requiredId", prerequisiteController.RemovePrerequisite)
			admin.GET("/prerequisites/courses", prerequisiteController.ListCoursesWithPrerequisites)

			admin.GET("/enrollments", enrollmentController.ListEnrollments)
			admin.DELETE("/enrollments/:id", enrollmentController.Unenroll)

			admin.POST("/assignments", assignmentController.AssignInstructor)
			admin.GET("/assignments", assignmentController.ListAssignments)
			admin.DELETE("/assignments/:id", assignmentController.UnassignInstructor)

			admin.GET("/users/instructors", authController.ListInstructors)

			admin.GET("/stats", statsController.GetPlatformStats)
		}
	}
}
