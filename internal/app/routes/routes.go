package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/lmsadmin/internal/app/controllers"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth                *controllers.AuthController
	Course              *controllers.CourseController
	Mentor              *controllers.MentorController
	StudentCourseMentor *controllers.StudentCourseMentorController
}

// SetupRouter configures all application routes. Every route but login, health and
// metrics passes the role guard before its handler runs.
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware, metricsEnabled bool) {
	router.Use(authMiddleware.Authenticate())

	// --- Public routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Message("ok"))
	})
	if metricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.POST("/auth/login/", ctrl.Auth.Login)

	// --- Any authenticated user ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleMentor, models.RoleStudent))
	{
		authenticated.POST("/auth/logout/", ctrl.Auth.Logout)
		authenticated.GET("/auth/me/", ctrl.Auth.Me)
	}

	// --- Admin only ---
	admin := router.Group("")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/users/", ctrl.Auth.CreateUser)

		// Course catalog
		admin.POST("/add-course/", ctrl.Course.AddCourse)
		admin.GET("/all-courses/", ctrl.Course.ListCourses)
		admin.PUT("/update-course/:id/", ctrl.Course.UpdateCourse)
		admin.DELETE("/delete-course/:id/", ctrl.Course.DeleteCourse)

		// Mentor buckets
		admin.PUT("/course-mentor/:mentor_id/", ctrl.Mentor.AddCourseToMentor)
		admin.DELETE("/course-mentor/:mentor_id/:course_id/", ctrl.Mentor.RemoveCourseFromMentor)
		admin.GET("/all-mentors/", ctrl.Mentor.ListMentors)
		admin.GET("/mentor-details/:mentor_id/", ctrl.Mentor.GetMentorDetail)

		// Student course mentor records
		admin.GET("/student-course-mentor/", ctrl.StudentCourseMentor.ListMappings)
		admin.POST("/student-course-mentor/", ctrl.StudentCourseMentor.CreateMapping)
		admin.PUT("/student-course-mentor/:record_id/", ctrl.StudentCourseMentor.UpdateMapping)
	}
}
